package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vnkhanh/ai-course-backend/models"
)

// FallbackChapters sinh 5 chương cố định bằng template khi không gọi được
// Gemini. Không phụ thuộc bên ngoài nên không bao giờ fail, và cấu trúc
// output giống hệt đường Gemini.
func FallbackChapters(req models.CourseGenerationRequest) []models.Chapter {
	topic := req.Topic
	audience := req.TargetAudience
	if audience == "" {
		audience = "learners"
	}

	templates := []struct {
		title       string
		description string
		content     string
		objectives  []string
		exercises   []string
		duration    string
	}{
		{
			title:       fmt.Sprintf("Introduction to %s", topic),
			description: fmt.Sprintf("Get started with %s and understand the fundamentals", topic),
			content: fmt.Sprintf(`Welcome to this comprehensive course on %s! This course is specifically designed for %s who want to learn %s effectively.

What you'll learn in this course:
- Core concepts and principles of %s
- Practical applications and real-world examples
- Best practices and industry standards
- Common pitfalls and how to avoid them

Course Structure:
This %d-hour course is structured to take you from %s level to solid proficiency in %s. Each chapter builds upon the previous one, ensuring a strong foundation before moving to more advanced topics.

By the end of this course, you'll have practical skills you can apply immediately and the confidence to tackle real-world %s challenges. Let's begin your journey into %s!`,
				topic, audience, topic, topic, req.Duration, req.Difficulty, topic, topic, topic),
			objectives: []string{
				fmt.Sprintf("Understand the fundamental concepts of %s", topic),
				"Identify key principles and methodologies",
				fmt.Sprintf("Recognize the importance and applications of %s", topic),
			},
			exercises: []string{
				fmt.Sprintf("Create a simple %s example", topic),
				fmt.Sprintf("Identify 3 real-world applications of %s", topic),
			},
			duration: "20-25 minutes",
		},
		{
			title:       "Core Concepts and Fundamentals",
			description: fmt.Sprintf("Dive deep into the essential concepts that form the foundation of %s", topic),
			content: fmt.Sprintf(`Now that you understand the basics, let's explore the core concepts that form the foundation of %s.

Key concepts covered:

1. Fundamental principles. Understanding the core principles that govern %s is crucial for success. They serve as the building blocks for all advanced techniques and applications.

2. Common patterns and methodologies. Every field has established patterns that have proven effective over time. Learning these will help you approach %s problems systematically.

3. Best practices and standards. Industry best practices ensure consistency, maintainability and efficiency in professional %s work.

4. Common pitfalls and solutions. Learning from others' mistakes is one of the fastest ways to improve; we identify frequent errors and proven fixes.

By the end of this chapter you'll have a solid understanding of the concepts that support the rest of the course.`,
				topic, topic, topic, topic),
			objectives: []string{
				fmt.Sprintf("Master the fundamental principles of %s", topic),
				"Apply common patterns and methodologies",
				"Implement industry best practices",
			},
			exercises: []string{
				fmt.Sprintf("Implement a basic %s pattern", topic),
				fmt.Sprintf("Identify and fix common %s issues", topic),
				"Create a best practices checklist",
			},
			duration: "25-30 minutes",
		},
		{
			title:       "Practical Implementation",
			description: "Apply your knowledge with hands-on exercises and real-world projects",
			content: fmt.Sprintf(`Theory is important, but practice makes perfect. In this chapter we apply what you've learned about %s to practical, real-world scenarios.

What you'll build:
- A complete %s project from start to finish
- Multiple smaller exercises to reinforce key concepts
- Real-world examples and case studies

Project structure:
1. Planning: define requirements, choose tools, plan the approach.
2. Implementation: build the core functionality, apply best practices, add error handling and validation.
3. Testing and optimization: test thoroughly, optimize performance, refactor for maintainability.
4. Documentation: document your code and decisions, prepare for future enhancements.

This hands-on approach will solidify your understanding and build confidence in your %s abilities.`,
				topic, topic, topic),
			objectives: []string{
				fmt.Sprintf("Build a complete %s project", topic),
				"Apply learned concepts in practice",
				"Implement performance optimizations",
			},
			exercises: []string{
				fmt.Sprintf("Create a %s project from scratch", topic),
				"Implement advanced features",
				"Optimize project performance",
			},
			duration: "30-40 minutes",
		},
		{
			title:       "Advanced Techniques and Optimization",
			description: "Explore advanced concepts and performance optimization strategies",
			content: fmt.Sprintf(`Ready to take your %s skills to the next level? This chapter covers advanced techniques, optimization strategies and industry practices that make you a proficient %s practitioner.

Advanced topics covered:

1. Performance optimization: profiling and benchmarking, memory management, caching strategies, scalability considerations.

2. Advanced patterns and architectures: design patterns specific to %s, architectural best practices, event-driven approaches.

3. Integration and APIs: third-party service integration, API design, authentication and security, error handling and monitoring.

4. Testing and quality assurance: unit testing strategies, integration testing, code quality and maintainability.

These topics prepare you for complex, real-world %s projects.`,
				topic, topic, topic, topic),
			objectives: []string{
				fmt.Sprintf("Implement advanced %s techniques", topic),
				"Optimize system performance",
				"Design scalable architectures",
			},
			exercises: []string{
				fmt.Sprintf("Optimize an existing %s project", topic),
				"Implement advanced design patterns",
				"Design a scalable system architecture",
			},
			duration: "35-45 minutes",
		},
		{
			title:       "Real-world Projects and Case Studies",
			description: "Analyze real-world implementations and build your final project",
			content: fmt.Sprintf(`In this final chapter we examine real-world %s implementations and you build a comprehensive final project that demonstrates your mastery of the subject.

Case studies:
- Enterprise application: how major companies implement %s
- Startup success story: rapid development and scaling strategies
- Open source project: community-driven development practices

Final project requirements. Your project should demonstrate understanding of core %s concepts, implementation of best practices, proper testing and documentation, and real-world applicability.

Portfolio development: document your project thoroughly, create a compelling presentation, and plan your continued learning path. This final project will serve as a portfolio piece showing your proficiency in %s.`,
				topic, topic, topic, topic),
			objectives: []string{
				fmt.Sprintf("Complete a comprehensive %s project", topic),
				"Apply all learned concepts in practice",
				"Create portfolio-worthy work",
			},
			exercises: []string{
				fmt.Sprintf("Build your final %s project", topic),
				"Create project documentation",
				"Prepare a project presentation",
			},
			duration: "45-60 minutes",
		},
	}

	chapters := make([]models.Chapter, 0, len(templates))
	for i, t := range templates {
		chapters = append(chapters, models.Chapter{
			ID:          uuid.NewString(),
			Title:       t.title,
			Description: t.description,
			Content:     t.content,
			Objectives:  t.objectives,
			Exercises:   t.exercises,
			Duration:    t.duration,
			Order:       i + 1,
		})
	}
	return chapters
}
