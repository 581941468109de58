// Package errors provides custom error types for sell-related operations.
package errors

import "errors"

var ErrInsufficientStock = errors.New("insufficient stock")
var ErrConflict = errors.New("conflict: the product has been modified by another transaction")

var ErrCreateSell = errors.New("failed to create sell")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
