package constants

// Permission constants used across the application
const (
	PermSuperAdminFull       = "bus-registration.super-admin.full-permit"
	PermCentralAdminFull     = "bus-registration.central-admin.full-permit"
	PermInstitutionAdminFull = "bus-registration.institution-admin.full-permit"
	PermDriverFull           = "bus-registration.driver.full-permit"
	PermStudentFull          = "bus-registration.student.full-permit"

	// Special permission that allows any authenticated user
	PermAny = "any"
)

// Permission groups for convenience
var (
	AdminPermissions = []string{
		PermSuperAdminFull,
		PermCentralAdminFull,
	}

	BookingPermissions = []string{
		PermSuperAdminFull,
		PermCentralAdminFull,
		PermInstitutionAdminFull,
		PermStudentFull,
	}
)
