// Package calculator is the desktop calculator app: a keypad with standard and
// scientific functions, a memory register, and a history panel.
//
// Input arrives as MsgTermInput (typed keys) and MsgPointer (clicks on the
// button grid). Every input is turned into a calc.Command and run through
// calc.Apply; the task owns the resulting State and redraws the framebuffer
// after each change.
package calculator
