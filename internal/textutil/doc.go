// Package textutil holds small string helpers shared by the terminal and
// headless front-ends.
package textutil
