// Package visitormongo implements visitor.Store on MongoDB.
//
// Quota consumption uses a single FindOneAndUpdate with a sessions_left > 0
// filter, so concurrent visits for the same record decrement without lost
// updates and never underflow into the unlimited sentinel.
package visitormongo
