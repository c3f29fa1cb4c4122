// Package stats derives season, head-to-head, circuit, career, constructor
// and qualifying aggregates from a dataset.Dataset.
//
// Every function here is a pure read over the immutable dataset: no
// function returns an error, and a selection without data yields a result
// with Available set to false.
package stats
