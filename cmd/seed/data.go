package main

import "github.com/talentbridge/referral-system/internal/core/domain"

type seedUser struct {
	key      string
	name     string
	email    string
	password string
	role     domain.Role
}

type seedCandidate struct {
	name      string
	email     string
	phone     string
	jobTitle  string
	status    domain.CandidateStatus
	recruiter string
}

var seedUsers = []seedUser{
	{"admin", "System Admin", "admin@example.com", "admin123", domain.RoleAdmin},
	{"alice", "Alice Recruiter", "alice@example.com", "alice123", domain.RoleRecruiter},
	{"bob", "Bob Recruiter", "bob@example.com", "bob123", domain.RoleRecruiter},
	{"carol", "Carol Recruiter", "carol@example.com", "carol123", domain.RoleRecruiter},
}

var seedCandidates = []seedCandidate{
	{"David Chen", "david.chen@techmail.com", "(555) 234-5678", "Senior Frontend Engineer", domain.StatusHired, "alice"},
	{"Sarah Martinez", "smartinez@devhub.io", "555-123-4567", "Full Stack Developer", domain.StatusHired, "alice"},
	{"Michael O'Brien", "m.obrien@cloudmail.com", "555-876-5432", "Backend Engineer", domain.StatusReviewed, "alice"},
	{"Priya Patel", "priya.patel@techcorp.net", "(555) 345-6789", "React Developer", domain.StatusHired, "alice"},
	{"Aisha Rahman", "aisha.r@analytics.io", "555 654 3210", "Data Scientist", domain.StatusReviewed, "alice"},
	{"Carlos Mendoza", "carlos.m@ailab.com", "(555) 789-0123", "AI Research Engineer", domain.StatusPending, "alice"},
	{"Emily Zhang", "emily.zhang@cloudops.net", "555-456-7890", "DevOps Engineer", domain.StatusHired, "alice"},
	{"Liam Foster", "liam.foster@uxmail.com", "(555) 890-1234", "UX Researcher", domain.StatusPending, "alice"},

	{"Daniel Park", "daniel.park@codemail.com", "555-890-1234", "iOS Developer", domain.StatusPending, "bob"},
	{"Grace Wu", "grace.wu@mobiledev.io", "555 901 2345", "Android Engineer", domain.StatusReviewed, "bob"},
	{"Ryan Murphy", "ryan.m@fullstack.net", "(555) 012-3456", "Full Stack Engineer", domain.StatusHired, "bob"},
	{"Zoe Hughes", "zoe.hughes@webmail.com", "555-123-4567", "Frontend Developer", domain.StatusPending, "bob"},
	{"Chloe Anderson", "chloe.a@mlteam.com", "(555) 345-6789", "ML Ops Engineer", domain.StatusReviewed, "bob"},
	{"Lily Martinez", "lily.martinez@devops.net", "555-789-0123", "Platform Engineer", domain.StatusHired, "bob"},

	{"William Nelson", "william.n@engineering.com", "(555) 890-1234", "Senior Backend Engineer", domain.StatusReviewed, "carol"},
	{"Abigail Carter", "abigail.c@devteam.io", "555-901-2345", "Software Engineer", domain.StatusPending, "carol"},
	{"Elijah Mitchell", "elijah.m@techmail.net", "555 012 3456", "Platform Engineer", domain.StatusHired, "carol"},
	{"Sofia Perez", "sofia.perez@datamail.com", "(555) 123-4567", "Senior Data Scientist", domain.StatusPending, "carol"},
	{"Carter Collins", "carter.c@security.com", "555-901-2345", "Cybersecurity Analyst", domain.StatusHired, "carol"},
}
