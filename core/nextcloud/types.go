package nextcloud

import "fmt"

// User is the remote state of one account as reported by the provisioning API.
type User struct {
	ID          string
	DisplayName string
	Email       string
	Quota       string
	Enabled     bool
	Groups      []string
	Subadmin    []string
}

// CreateRequest carries the attributes for a new account.
// Groups and Subadmin are applied with the create call where the API allows it.
type CreateRequest struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Quota       string
	Language    string
	Groups      []string
	Subadmin    []string
}

// Keys accepted by EditUser.
const (
	KeyDisplayName = "displayname"
	KeyEmail       = "email"
	KeyQuota       = "quota"
)

// APIError is a rejection reported inside an OCS envelope.
// The HTTP layer succeeded; the API itself refused the operation.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ocs statuscode %d", e.StatusCode)
	}
	return fmt.Sprintf("ocs statuscode %d: %s", e.StatusCode, e.Message)
}
