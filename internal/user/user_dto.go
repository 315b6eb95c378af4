package user

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	ManagerID   *string `json:"manager_id"`
	IsAdmin     *bool   `json:"is_admin"`
	IsStudent   *bool   `json:"is_student"`
	Country     *string `json:"country"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	DisplayName string  `json:"display_name"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
	IsAdmin     bool    `json:"is_admin"`
	IsStudent   bool    `json:"is_student"`
	Country     *string `json:"country,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
