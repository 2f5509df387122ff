// Package binding pairs compiled binding delegates with the data context
// stack they were authored against, and evaluates them against a live
// control tree.
//
// Evaluation has two steps. FindTarget walks from the evaluating node
// toward the root until it meets the node whose own context stack equals
// the binding's, counting the context boundaries it crosses. The delegate
// is then called with the context values collected from that node upward,
// nearest first. Errors returned by a delegate are passed to the caller
// untouched.
package binding
