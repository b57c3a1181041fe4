package masterdata

// LoginResult is the flattened upstream login response.
type LoginResult struct {
	UserID      string
	Name        string
	Role        string
	TokenType   string
	AccessToken string
}

// NormalizeLogin flattens the login response. Tokens and the user profile
// may be at the top level or nested under "data"/"user" depending on the
// backend version.
func NormalizeLogin(payload any) LoginResult {
	obj := asObject(payload)
	if inner, ok := obj["data"].(map[string]any); ok {
		obj = inner
	}

	var out LoginResult
	if v, ok := pickFirst(obj, "accessToken", "access_token", "token"); ok {
		out.AccessToken = toString(v)
	}
	if v, ok := pickFirst(obj, "tokenType", "token_type"); ok {
		out.TokenType = toString(v)
	}

	user := obj
	if nested, ok := obj["user"].(map[string]any); ok {
		user = nested
	}
	if v, ok := pickFirst(user, "id", "userId", "user_id"); ok {
		out.UserID = keyOf(v)
	}
	if v, ok := pickFirst(user, "name", "fullName", "full_name", "username", "email"); ok {
		out.Name = toString(v)
	}
	if v, ok := pickFirst(user, "role", "roleName", "role_name"); ok {
		switch role := v.(type) {
		case string:
			out.Role = role
		case map[string]any:
			if nameVal, ok := pickFirst(role, "name", "roleName"); ok {
				out.Role = toString(nameVal)
			}
		}
	}
	return out
}
