package entities

// Admin represents a console operator. Read-only in this layer; admin accounts
// are managed by the identity collaborator.
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminFromDocument decodes a raw store document into an Admin.
func AdminFromDocument(id string, f map[string]any) *Admin {
	role := docString(f, "role")
	if role == "" {
		role = "admin"
	}
	return &Admin{
		ID:    id,
		Name:  docString(f, "name"),
		Email: docString(f, "email"),
		Role:  role,
	}
}
