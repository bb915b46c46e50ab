// Package producer turns one logical tuning-parameter value into the
// namelist edits that realise it.
//
// Every Producer is a pure function of its input: no I/O, no hidden state.
// Constructor arguments are validated eagerly so that a badly configured
// model mapping fails when it is built rather than when it is first used.
package producer
