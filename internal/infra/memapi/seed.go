package memapi

import (
	"time"

	"taskdeck/internal/domain"
)

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

func hoursPtr(h float64) *float64 {
	return &h
}

// seedUsers returns the demo accounts. Any password is accepted for them.
func seedUsers() []domain.User {
	return []domain.User{
		{
			ID:         "1",
			Email:      "admin@example.com",
			Username:   "admin",
			FirstName:  "Admin",
			LastName:   "User",
			Role:       domain.RoleAdmin,
			Status:     domain.UserActive,
			Phone:      "+1234567890",
			Department: "Management",
			CreatedAt:  date("2024-01-01"),
			UpdatedAt:  date("2024-01-01"),
		},
		{
			ID:         "2",
			Email:      "john.doe@example.com",
			Username:   "johndoe",
			FirstName:  "John",
			LastName:   "Doe",
			Role:       domain.RoleManager,
			Status:     domain.UserActive,
			Phone:      "+1234567891",
			Department: "Development",
			CreatedAt:  date("2024-01-15"),
			UpdatedAt:  date("2024-01-15"),
		},
		{
			ID:         "3",
			Email:      "jane.smith@example.com",
			Username:   "janesmith",
			FirstName:  "Jane",
			LastName:   "Smith",
			Role:       domain.RoleUser,
			Status:     domain.UserActive,
			Phone:      "+1234567892",
			Department: "Development",
			CreatedAt:  date("2024-02-01"),
			UpdatedAt:  date("2024-02-01"),
		},
		{
			ID:         "4",
			Email:      "bob.johnson@example.com",
			Username:   "bobjohnson",
			FirstName:  "Bob",
			LastName:   "Johnson",
			Role:       domain.RoleUser,
			Status:     domain.UserActive,
			Phone:      "+1234567893",
			Department: "Design",
			CreatedAt:  date("2024-02-15"),
			UpdatedAt:  date("2024-02-15"),
		},
	}
}

// seedTasks returns the demo backlog.
func seedTasks() []domain.Task {
	return []domain.Task{
		{
			ID:             "1",
			Title:          "Setup project repository",
			Description:    "Initialize Git repository and setup project structure",
			Status:         domain.StatusDone,
			Priority:       domain.PriorityHigh,
			AssignedTo:     "2",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-01"),
			UpdatedAt:      date("2024-12-03"),
			DueDate:        datePtr("2024-12-05"),
			CompletedAt:    datePtr("2024-12-03"),
			Tags:           []string{"setup", "infrastructure"},
			EstimatedHours: hoursPtr(4),
		},
		{
			ID:             "2",
			Title:          "Design database schema",
			Description:    "Create ERD and design database tables for the application",
			Status:         domain.StatusDone,
			Priority:       domain.PriorityHigh,
			AssignedTo:     "2",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-02"),
			UpdatedAt:      date("2024-12-05"),
			DueDate:        datePtr("2024-12-07"),
			CompletedAt:    datePtr("2024-12-05"),
			Tags:           []string{"database", "design"},
			EstimatedHours: hoursPtr(8),
		},
		{
			ID:             "3",
			Title:          "Implement user authentication",
			Description:    "Develop login, logout, and registration functionality",
			Status:         domain.StatusInProgress,
			Priority:       domain.PriorityUrgent,
			AssignedTo:     "3",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-05"),
			UpdatedAt:      date("2024-12-20"),
			DueDate:        datePtr("2024-12-28"),
			Tags:           []string{"authentication", "security", "backend"},
			EstimatedHours: hoursPtr(16),
		},
		{
			ID:             "4",
			Title:          "Create dashboard UI",
			Description:    "Design and implement the main dashboard interface",
			Status:         domain.StatusInProgress,
			Priority:       domain.PriorityMedium,
			AssignedTo:     "4",
			CreatedBy:      "2",
			CreatedAt:      date("2024-12-10"),
			UpdatedAt:      date("2024-12-22"),
			DueDate:        datePtr("2024-12-30"),
			Tags:           []string{"ui", "design", "frontend"},
			EstimatedHours: hoursPtr(12),
		},
		{
			ID:             "5",
			Title:          "Write API documentation",
			Description:    "Document all API endpoints with examples and request/response formats",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityMedium,
			AssignedTo:     "2",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-15"),
			UpdatedAt:      date("2024-12-15"),
			DueDate:        datePtr("2025-01-05"),
			Tags:           []string{"documentation", "api"},
			EstimatedHours: hoursPtr(6),
		},
		{
			ID:             "6",
			Title:          "Implement task filtering",
			Description:    "Add filters for status, priority, assignee, and date range",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityMedium,
			AssignedTo:     "3",
			CreatedBy:      "2",
			CreatedAt:      date("2024-12-18"),
			UpdatedAt:      date("2024-12-18"),
			DueDate:        datePtr("2025-01-10"),
			Tags:           []string{"feature", "frontend"},
			EstimatedHours: hoursPtr(8),
		},
		{
			ID:             "7",
			Title:          "Setup CI/CD pipeline",
			Description:    "Configure automated testing and deployment pipeline",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityHigh,
			AssignedTo:     "2",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-20"),
			UpdatedAt:      date("2024-12-20"),
			DueDate:        datePtr("2025-01-15"),
			Tags:           []string{"devops", "automation"},
			EstimatedHours: hoursPtr(10),
		},
		{
			ID:             "8",
			Title:          "Write unit tests",
			Description:    "Achieve 80% code coverage with unit tests",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityMedium,
			AssignedTo:     "3",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-22"),
			UpdatedAt:      date("2024-12-22"),
			DueDate:        datePtr("2025-01-20"),
			Tags:           []string{"testing", "quality"},
			EstimatedHours: hoursPtr(20),
		},
		{
			ID:             "9",
			Title:          "Optimize database queries",
			Description:    "Review and optimize slow database queries",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityLow,
			AssignedTo:     "2",
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-23"),
			UpdatedAt:      date("2024-12-23"),
			DueDate:        datePtr("2025-02-01"),
			Tags:           []string{"performance", "database"},
			EstimatedHours: hoursPtr(6),
		},
		{
			ID:             "10",
			Title:          "Security audit",
			Description:    "Conduct security audit and fix vulnerabilities",
			Status:         domain.StatusTodo,
			Priority:       domain.PriorityUrgent,
			CreatedBy:      "1",
			CreatedAt:      date("2024-12-24"),
			UpdatedAt:      date("2024-12-24"),
			DueDate:        datePtr("2024-12-27"),
			Tags:           []string{"security", "audit"},
			EstimatedHours: hoursPtr(12),
		},
	}
}
