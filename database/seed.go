package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedResult reports what a Seed call inserted
type SeedResult struct {
	AdminCreated    bool `json:"adminCreated"`
	SkillsCreated   int  `json:"skillsCreated"`
	ProjectsCreated int  `json:"projectsCreated"`
}

// seedLockKey names the postgres advisory lock held while seeding
const seedLockKey = 7_403_118

// Seed inserts the admin account and demo content. Each part is skipped when
// its data is already present, so calling Seed repeatedly or concurrently is safe.
func (d Database) Seed(ctx context.Context, adminEmail, adminPassword string) (SeedResult, error) {
	var result SeedResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// count-then-insert below needs seeders to take turns
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey).Error; err != nil {
				return fmt.Errorf("locking seed: %w", err)
			}
		}

		seeded, err := New(tx).seed(ctx, adminEmail, adminPassword)
		result = seeded
		return err
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Info().
		Bool("adminCreated", result.AdminCreated).
		Int("skillsCreated", result.SkillsCreated).
		Int("projectsCreated", result.ProjectsCreated).
		Msg("database seeded")

	return result, nil
}

func (d Database) seed(ctx context.Context, adminEmail, adminPassword string) (SeedResult, error) {
	var result SeedResult

	created, err := d.seedAdmin(ctx, adminEmail, adminPassword)
	if err != nil {
		return result, err
	}
	result.AdminCreated = created

	skillCount, err := d.skillRepo.Count(ctx)
	if err != nil {
		return result, fmt.Errorf("counting skills: %w", err)
	}
	if skillCount == 0 {
		skills := seedSkills()
		if err := d.skillRepo.AddMany(ctx, skills); err != nil {
			return result, fmt.Errorf("creating skills: %w", err)
		}
		result.SkillsCreated = len(skills)
	}

	projectCount, err := d.projectRepo.Count(ctx)
	if err != nil {
		return result, fmt.Errorf("counting projects: %w", err)
	}
	if projectCount == 0 {
		projects := seedProjects()
		if err := d.projectRepo.AddMany(ctx, projects); err != nil {
			return result, fmt.Errorf("creating projects: %w", err)
		}
		result.ProjectsCreated = len(projects)
	}

	return result, nil
}

// seedAdmin creates the admin account unless a user with adminEmail exists.
// An insert that loses a race for the email counts as existing.
func (d Database) seedAdmin(ctx context.Context, adminEmail, adminPassword string) (bool, error) {
	_, err := d.userRepo.FindByEmail(ctx, adminEmail)
	if err == nil {
		return false, nil
	}
	if !errs.IsNotFound(err) {
		return false, fmt.Errorf("looking up admin user: %w", err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}
	admin := &models.User{Email: adminEmail, PasswordHash: hash, Role: models.RoleAdmin}

	// savepoint so a duplicate email does not abort the surrounding transaction
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return NewUserRepo(tx).Add(ctx, admin)
	})
	switch {
	case errs.IsAlreadyExists(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("creating admin user: %w", err)
	}
	return true, nil
}

func seedSkills() []*models.Skill {
	return []*models.Skill{
		{
			Title: "Frontend Developer", Icon: "💻", Count: 1, Featured: true,
			Skills: []string{"React.js & Next.js", "TypeScript", "Tailwind CSS", "Framer Motion", "Responsive Design", "State Management", "Performance Optimization"},
		},
		{
			Title: "Backend Developer", Icon: "⚙️", Count: 2, Featured: true,
			Skills: []string{"Go & Node.js", "PostgreSQL & MongoDB", "REST APIs & GraphQL", "Authentication & JWT", "Microservices", "Database Design", "API Security"},
		},
		{
			Title: "AI/ML Engineer", Icon: "🤖", Count: 3, Featured: true,
			Skills: []string{"Machine Learning", "Deep Learning", "TensorFlow & PyTorch", "Natural Language Processing", "Computer Vision", "Model Deployment", "Data Preprocessing"},
		},
		{
			Title: "Data Scientist", Icon: "📊", Count: 4, Featured: true,
			Skills: []string{"Data Analysis", "Statistical Modeling", "Python & R", "Data Visualization", "Big Data Technologies", "Predictive Analytics", "Business Intelligence"},
		},
		{
			Title: "DevOps Engineer", Icon: "🚀", Count: 5, Featured: true,
			Skills: []string{"Docker & Kubernetes", "AWS & Azure", "CI/CD Pipelines", "Infrastructure as Code", "Monitoring & Logging", "Linux Administration", "Security Best Practices"},
		},
		{
			Title: "UI/UX Designer", Icon: "🎨", Count: 6, Featured: true,
			Skills: []string{"User Experience Design", "User Interface Design", "Figma & Adobe XD", "Prototyping", "Design Systems", "User Research", "Accessibility"},
		},
	}
}

func seedProjects() []*models.Project {
	link := func(s string) *string { return &s }

	return []*models.Project{
		{
			Title:               "AI-Powered Task Manager",
			Name:                "ai-task-manager",
			Description:         "An intelligent task management application that uses AI to prioritize tasks, suggest optimal scheduling, and provide productivity insights.",
			DetailedDescription: "Combines a modern web stack with machine learning to analyze task completion patterns and deadlines and recommend what to work on next.",
			TechStack:           []string{"Next.js", "TypeScript", "TensorFlow.js", "MongoDB", "Tailwind CSS", "Framer Motion"},
			Images: []string{
				"https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
			},
			GithubURL: link("https://github.com/example/ai-task-manager"),
			LiveURL:   link("https://ai-task-manager.example.com"),
			Featured:  true,
			Category:  models.CategoryAI,
		},
		{
			Title:               "E-Commerce Platform",
			Name:                "modern-ecommerce",
			Description:         "A full-featured e-commerce platform with advanced search, real-time inventory, and seamless payment integration.",
			DetailedDescription: "Product search with filters, real-time inventory, Stripe payments, order tracking and an admin dashboard for store management.",
			TechStack:           []string{"Next.js", "TypeScript", "MongoDB", "Stripe", "Redis", "Tailwind CSS"},
			Images: []string{
				"https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800&h=600&fit=crop",
			},
			GithubURL: link("https://github.com/example/modern-ecommerce"),
			LiveURL:   link("https://modern-ecommerce.example.com"),
			Featured:  true,
			Category:  models.CategoryWeb,
		},
		{
			Title:               "Data Analytics Dashboard",
			Name:                "analytics-dashboard",
			Description:         "A comprehensive analytics dashboard for visualizing complex datasets with interactive charts and real-time updates.",
			DetailedDescription: "Interactive charts, streaming data, custom report generation and trend analysis on top of a Python backend.",
			TechStack:           []string{"React", "D3.js", "Python", "FastAPI", "PostgreSQL", "Redis"},
			Images: []string{
				"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=600&fit=crop",
			},
			GithubURL: link("https://github.com/example/analytics-dashboard"),
			LiveURL:   link("https://analytics-dashboard.example.com"),
			Featured:  false,
			Category:  models.CategoryData,
		},
		{
			Title:               "Real-Time Chat Application",
			Name:                "realtime-chat",
			Description:         "A modern chat application with real-time messaging, file sharing, and video calling capabilities.",
			DetailedDescription: "Real-time messaging, file sharing, group chats and peer-to-peer video calls over WebRTC.",
			TechStack:           []string{"Next.js", "Socket.io", "WebRTC", "MongoDB", "TypeScript", "Tailwind CSS"},
			Images: []string{
				"https://images.unsplash.com/photo-1577563908411-5077b6dc7624?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=800&h=600&fit=crop",
			},
			GithubURL: link("https://github.com/example/realtime-chat"),
			LiveURL:   link("https://realtime-chat.example.com"),
			Featured:  true,
			Category:  models.CategoryWeb,
		},
	}
}
