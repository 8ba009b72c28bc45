// Package domain contains the vocabulary entities shared by every layer of
// the application: words, their categories and the lookup tables used to
// present them. Scheduling, quiz and progress rules live in the srs, quiz
// and progress subpackages and operate on these values without touching
// storage.
package domain
