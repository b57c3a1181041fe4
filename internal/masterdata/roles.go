package masterdata

// RoleRow is a role as listed on the role management page.
type RoleRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	UserCount   int      `json:"userCount"`
}

// NormalizeRoles reshapes the roles payload into table rows. Permissions may
// arrive as a list of strings or a list of {name} objects.
func NormalizeRoles(payload any) []RoleRow {
	raws := UnwrapArray(payload)
	rows := make([]RoleRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := RoleRow{Name: "-", Description: "-", Permissions: []string{}}

		if v, ok := pickFirst(obj, "id", "roleId", "role_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "name", "roleName", "role_name"); ok {
			row.Name = toString(v)
		}
		if v, ok := pickFirst(obj, "description", "desc"); ok {
			row.Description = toString(v)
		}
		if v, ok := pickFirst(obj, "userCount", "user_count", "totalUsers", "total_users"); ok {
			if n, parsed := toNumber(v); parsed && n >= 0 {
				row.UserCount = int(n)
			}
		}
		if v, ok := pickFirst(obj, "permissions", "permission"); ok {
			for _, p := range UnwrapArray(v) {
				switch perm := p.(type) {
				case string:
					if perm != "" {
						row.Permissions = append(row.Permissions, perm)
					}
				case map[string]any:
					if nameVal, ok := pickFirst(perm, "name", "code", "key"); ok {
						row.Permissions = append(row.Permissions, toString(nameVal))
					}
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// UserRow is a user as listed on the user management page.
type UserRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// NormalizeUsers reshapes the users payload into table rows. The role may be
// inlined as a string or nested as a {name} object.
func NormalizeUsers(payload any) []UserRow {
	raws := UnwrapArray(payload)
	rows := make([]UserRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := UserRow{Name: "-", Email: "-", Role: "-", Status: StatusUnknown, CreatedAt: "-"}

		if v, ok := pickFirst(obj, "id", "userId", "user_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "name", "fullName", "full_name", "username"); ok {
			row.Name = toString(v)
		}
		if v, ok := pickFirst(obj, "email", "mail"); ok {
			row.Email = toString(v)
		}
		if v, ok := pickFirst(obj, "role", "roleName", "role_name"); ok {
			switch role := v.(type) {
			case string:
				row.Role = role
			case map[string]any:
				if nameVal, ok := pickFirst(role, "name", "roleName"); ok {
					row.Role = toString(nameVal)
				}
			}
		}
		row.Status = activeStatus(obj)
		if v, ok := pickFirst(obj, "createdAt", "created_at", "createdDate"); ok {
			row.CreatedAt = toString(v)
		}
		rows = append(rows, row)
	}
	return rows
}
