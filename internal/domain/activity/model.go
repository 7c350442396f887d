package activity

type Action string

const (
	ActionAdded       Action = "Added"
	ActionEdited      Action = "Edited"
	ActionDeleted     Action = "Deleted"
	ActionTransaction Action = "Transaction"
	ActionAlert       Action = "Alert"
)

type Entry struct {
	ID        int64  `json:"id"`
	ItemName  string `json:"itemName"`
	Action    Action `json:"action"`
	UserID    *int64 `json:"userId"`
	UserName  string `json:"userName"`
	UserRole  string `json:"userRole"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
}

// Filter narrows the activity report; zero values mean "all".
type Filter struct {
	Action Action
	Month  int
	Year   int
}
