package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"user": {
		"questionnaire:view",
		"session:create",
		"session:answer",
		"session:submit",
		"result:view-own",
		"reading:write",
		"reading:view-own",
		"export:own",
		"user:change_password",
	},
	"clinician": {
		"questionnaire:view",
		"result:view-own",
		"result:view-all",
		"reading:view-own",
		"reading:view-all",
		"export:own",
		"export:all",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
