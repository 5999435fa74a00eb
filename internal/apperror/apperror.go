// Package apperror defines the API error taxonomy. Handlers record an
// *Error on the gin context and the error middleware translates it into
// a status code and JSON body at the boundary.
package apperror

type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Messages match the original API contract, typos included.
var (
	ErrAuthenticationFailed = New(401, "Authentication Failed!")
	ErrRateLimitExceeded    = New(429, "Rate limit exceeded. Try again later.")
	ErrValidation           = New(400, "Request Validation Error")
	ErrInternal             = New(500, "Internal Server Error")

	ErrUsernameExists    = New(400, "Usrname Already Exist!")
	ErrEmailExists       = New(400, "Email Already Exist!")
	ErrDisplayNameExists = New(400, "Display Name Already Exist!")
	ErrUserNotFound      = New(404, "User Not Found!")

	ErrSubredditNameExists = New(400, "Subreddit Name Arelady Exist!")
	ErrSubredditNotFound   = New(404, "Subreddit Not Found!")

	ErrPostNotFound     = New(404, "Post Not Found!")
	ErrPostVoteNotFound = New(404, "Post Vote Not Found!")
	ErrPostVoteExists   = New(400, "Post Vote Already Exist!")

	ErrCommentNotFound     = New(404, "Comment Not Found!")
	ErrCommentVoteNotFound = New(404, "Comment Vote Not Found!")
	ErrCommentVoteExists   = New(400, "Comment Vote Already Exist!")
)
