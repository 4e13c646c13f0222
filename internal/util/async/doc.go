// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] executes independent operations concurrently and returns
// every failure joined into one error. It is used to remove staged
// objects when a launch is rolled back.
package async
