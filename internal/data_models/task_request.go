package dto

type CreateTaskRequest struct {
	Title       Nullable[string] `json:"title"`
	Description Nullable[string] `json:"description"`
	Priority    Nullable[string] `json:"priority"`
	DueDate     Nullable[string] `json:"dueDate"`
	AssignedTo  Nullable[string] `json:"assignedTo"`
}

type UpdateTaskRequest struct {
	Title       Nullable[string] `json:"title"`
	Description Nullable[string] `json:"description"`
	Status      Nullable[string] `json:"status"`
	Priority    Nullable[string] `json:"priority"`
	DueDate     Nullable[string] `json:"dueDate"`
	AssignedTo  Nullable[string] `json:"assignedTo"`
}

type ListTasksQuery struct {
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	AssignedTo string `query:"assignedTo"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
