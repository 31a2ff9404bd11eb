package domain

// Identity is the minimal record of an authenticated principal carried across
// requests by the session layer.
type Identity struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	RoleName  string `json:"role"`
	RoleID    RoleID `json:"role_id"`
}

// IdentityOf builds the session identity for an account.
func IdentityOf(a *Account) Identity {
	return Identity{
		AccountID: a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		RoleName:  a.RoleName(),
		RoleID:    a.RoleID,
	}
}
