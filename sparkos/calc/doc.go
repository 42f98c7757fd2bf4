// Package calc holds the calculator core: a closed-grammar arithmetic evaluator, the scientific
// function set, number formatting, the evaluation history, and the input state machine.
//
// Nothing here touches the kernel or the framebuffer; the calculator task drives it with
// Apply and renders whatever State comes back.
package calc
