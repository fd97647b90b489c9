package usecase

import "fmt"

// ErrPersistence indicates a durable-store or authoritative-lookup failure
var ErrPersistence = fmt.Errorf("unread use case persistence error")

// ErrStateStore indicates a shared key-value store failure
var ErrStateStore = fmt.Errorf("unread use case state store error")
