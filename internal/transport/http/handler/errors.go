package handler

const (
	errInternalServer = "Internal server error"
	errPageNotFound   = "Page does not exist!"
	errInvalidRequest = "Invalid request."
	errEmptyURL       = "Enter a URL."
	errNotOwner       = "You do not own this URL."
	errLoginRequired  = "You must be logged in to do that."
	errInvalidSignup  = "Enter a valid email and/or password."
	errUserExists     = "This user already exists. Enter a new email."
	errInvalidLogin   = "Invalid email or password."
)
