package rbac

// Permission names used by the HTTP routes.
const (
	PermCourseView       = "course:view"
	PermCourseEnroll     = "course:enroll"
	PermCourseManage     = "course:manage"
	PermQuizTake         = "quiz:take"
	PermQuizManage       = "quiz:manage"
	PermAnnouncementEdit = "announcement:manage"
	PermProfileView      = "profile:view"
	PermPasswordChange   = "user:change_password"
	PermStatsView        = "stats:view"
)

// RolePermissions is the policy every guard consults. Admin gets everything.
var RolePermissions = Policy{
	"student": {
		PermCourseView,
		PermCourseEnroll,
		PermQuizTake,
		PermProfileView,
		PermPasswordChange,
	},
	"admin": {
		"*",
	},
}
