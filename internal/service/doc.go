// Package service contains the application use cases of the vocabulary
// trainer. It orchestrates the pure domain packages (srs, quiz, progress)
// and the repositories defined in internal/store.
//
// Key components:
//
//   - WordService manages the word collection, flashcard outcomes, category
//     summaries, seeding and bulk import.
//   - ReviewService lists due words and applies SRS grades.
//   - QuizService drives quiz sessions held in an in-memory TTL cache.
//   - ProgressService reports aggregate counters and the study streak.
//
// Operations that touch more than one row run in a single transaction via
// store.RunInTransaction with WithTx repositories. Services depend on
// repository interfaces only, never on a concrete database.
package service
