package bot

// Replies sent to the chat.
const (
	MsgWelcome          = "Send a movie or TV title."
	MsgRestricted       = "This bot is restricted to the owner."
	MsgEmptyQuery       = "Empty query. Please enter a title."
	MsgNoResults        = "No results found."
	MsgNoRecommendation = "No recommendations found."
	MsgInvalidID        = "Invalid identifier."
	MsgRequestSubmitted = "Request submitted ✅"
	MsgRequestApproved  = "Request submitted and approved ✅"

	prefixSearchError   = "Search error: "
	prefixRequestError  = "Request error: "
	prefixRecsError     = "Recommendations error: "
	prefixApproveFailed = "Approval failed: "
)
