package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrTableOccupied = &CustomError{"Table already has an active session"}
	ErrSessionClosed = &CustomError{"Session is already closed"}
)
