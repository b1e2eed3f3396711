// Package analytics holds the pure computations over a user's mood entries:
// statistics snapshots, streaks, trends, monthly comparisons, insights, CSV
// export and the goal and reminder evaluators. Nothing here touches storage;
// callers pass the entries and the current day in.
package analytics
