// Package template compiles marked-up fragments once and stamps out
// independent, updatable instances of them.
package template
