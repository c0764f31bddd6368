// Package part defines the descriptors the template parser emits for each
// dynamic slot and the Part protocol used to bind values to those slots.
package part
