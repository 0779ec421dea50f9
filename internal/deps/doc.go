// Package deps checks that the external binaries vencode shells out to are
// installed and reports their versions and compiled-in encoders.
package deps
