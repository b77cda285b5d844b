// Package storetest provides store doubles: a testify mock and an in-memory
// store that follows the same rules as the database backends.
package storetest
