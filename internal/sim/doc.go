// Package sim drives a field through a number of generations: it picks the
// stepper, commits every generation, writes periodic snapshots and reports
// progress through the logger carried in the context.
package sim
