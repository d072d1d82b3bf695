package repository

import (
	"time"

	"jobhive/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedJobs is the built-in job catalog.
func SeedJobs() []domain.Job {
	return []domain.Job{
		{
			ID: 1, Title: "UI/UX Design Intern", Company: "TechBee Company", Type: domain.JobTypeInternship,
			Location: "Amman, Jordan (Remote)", Schedule: "Part-time, 20 hours/week", Salary: "300-500 JOD/month",
			Skills: []string{"Figma", "UI Design", "Wireframing", "Adobe XD"}, Industry: "Design",
			PostedDate: day("2025-05-01"), Icon: "fa-laptop-code",
		},
		{
			ID: 2, Title: "Junior Web Developer", Company: "HiveWorks Solutions", Type: domain.JobTypeFullTime,
			Location: "Cairo, Egypt (Hybrid)", Schedule: "Full-time, 40 hours/week", Salary: "5000-7000 EGP/month",
			Skills: []string{"React", "JavaScript", "HTML", "CSS"}, Industry: "Technology",
			PostedDate: day("2025-05-06"), Icon: "fa-code",
		},
		{
			ID: 3, Title: "Marketing Assistant", Company: "BeeMarketing Agency", Type: domain.JobTypeFullTime,
			Location: "Dubai, UAE (On-site)", Schedule: "Full-time, 40 hours/week", Salary: "4000-6000 AED/month",
			Skills: []string{"Social Media", "Content Creation", "Analytics"}, Industry: "Marketing",
			PostedDate: day("2025-05-03"), Icon: "fa-chart-bar",
		},
		{
			ID: 4, Title: "Data Analyst Intern", Company: "AnalyticsPro", Type: domain.JobTypeInternship,
			Location: "Remote", Schedule: "Part-time, 25 hours/week", Salary: "600 USD/month",
			Skills: []string{"SQL", "Python", "Excel", "Tableau"}, Industry: "Technology",
			PostedDate: day("2025-05-02"), Icon: "fa-database",
		},
		{
			ID: 5, Title: "Frontend Developer", Company: "TechCorp", Type: domain.JobTypeContract,
			Location: "Amman, Jordan (Hybrid)", Schedule: "Contract, 6 months", Salary: "900-1200 JOD/month",
			Skills: []string{"React", "TypeScript", "Tailwind CSS"}, Industry: "Technology",
			PostedDate: day("2025-04-25"), Icon: "fa-code",
		},
		{
			ID: 6, Title: "Graphic Designer", Company: "DesignHub", Type: domain.JobTypeFreelance,
			Location: "Remote", Schedule: "Flexible", Salary: "Per project",
			Skills: []string{"Illustrator", "Photoshop", "Branding", "Figma"}, Industry: "Design",
			PostedDate: day("2025-04-18"), Icon: "fa-pen-nib",
		},
		{
			ID: 7, Title: "Customer Support Associate", Company: "HelpDesk Hive", Type: domain.JobTypePartTime,
			Location: "Cairo, Egypt (On-site)", Schedule: "Part-time, evenings", Salary: "3000-4000 EGP/month",
			Skills: []string{"Communication", "Zendesk", "Arabic", "English"}, Industry: "Customer Service",
			PostedDate: day("2025-04-30"), Icon: "fa-headset",
		},
		{
			ID: 8, Title: "Software Engineer", Company: "CodeMasters", Type: domain.JobTypeFullTime,
			Location: "Dubai, UAE (Hybrid)", Schedule: "Full-time, 40 hours/week", Salary: "12000-15000 AED/month",
			Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes"}, Industry: "Technology",
			PostedDate: day("2025-05-05"), Icon: "fa-server",
		},
		{
			ID: 9, Title: "Content Writer", Company: "GrowthGenius", Type: domain.JobTypeFreelance,
			Location: "Remote", Schedule: "Flexible", Salary: "0.05 USD/word",
			Skills: []string{"Copywriting", "SEO", "Content Creation"}, Industry: "Marketing",
			PostedDate: day("2025-04-28"), Icon: "fa-feather",
		},
		{
			ID: 10, Title: "Finance Trainee", Company: "Nahla Capital", Type: domain.JobTypeInternship,
			Location: "Amman, Jordan (On-site)", Schedule: "Full-time, 3 months", Salary: "400 JOD/month",
			Skills: []string{"Excel", "Accounting", "Financial Modeling"}, Industry: "Finance",
			Icon: "fa-coins",
		},
	}
}
