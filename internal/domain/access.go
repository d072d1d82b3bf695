package domain

type Page string

const (
	PageDashboard     Page = "dashboard"
	PageResumeBuilder Page = "resume-builder"
	PagePostJob       Page = "post-job"
	PageAdminPanel    Page = "admin-panel"
	PageActivity      Page = "activity"
)

type AccessKind int

const (
	Allow AccessKind = iota
	RequireSignIn
	Redirect
)

type AccessDecision struct {
	Kind    AccessKind
	Message string
}

var allow = AccessDecision{Kind: Allow}

func redirect(msg string) AccessDecision {
	return AccessDecision{Kind: Redirect, Message: msg}
}

// Access decides whether u may open page. A nil user must sign in first.
func Access(page Page, u *User) AccessDecision {
	if u == nil {
		return AccessDecision{Kind: RequireSignIn, Message: "Please sign in to continue."}
	}

	switch u.Role {
	case RoleStudent:
		switch page {
		case PageDashboard, PageResumeBuilder, PageActivity:
			return allow
		case PagePostJob:
			return redirect("Job posting is only available to employer accounts.")
		case PageAdminPanel:
			return redirect("The admin panel is only available to administrators.")
		}
	case RoleEmployer:
		switch page {
		case PageDashboard, PagePostJob:
			return allow
		case PageResumeBuilder, PageActivity:
			return redirect("The resume builder is only available to student accounts.")
		case PageAdminPanel:
			return redirect("The admin panel is only available to administrators.")
		}
	case RoleAdmin:
		switch page {
		case PageDashboard, PageAdminPanel:
			return allow
		case PageResumeBuilder, PageActivity:
			return redirect("The resume builder is only available to student accounts.")
		case PagePostJob:
			return redirect("Job posting is only available to employer accounts.")
		}
	case RoleNone:
		if page == PageDashboard {
			return allow
		}
		return redirect("Your account has no role assigned.")
	}
	return redirect("Access restricted.")
}
