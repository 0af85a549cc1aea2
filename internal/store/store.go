package store

import (
	"context"
	"errors"
	"slices"
	"time"
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrInternshipNotFound = errors.New("internship not found")
)

type Internship struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Ministry       string   `json:"ministry"`
	Location       string   `json:"location"`
	RequiredSkills []string `json:"required_skills"`
}

func (i Internship) SkillTags() []string { return i.RequiredSkills }

// Clone returns a copy that shares no slices with i.
func (i Internship) Clone() Internship {
	i.RequiredSkills = slices.Clone(i.RequiredSkills)
	return i
}

type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"-"`
}

func (s Student) SkillTags() []string { return s.Skills }

// Clone returns a copy that shares no slices with s.
func (s Student) Clone() Student {
	s.Skills = slices.Clone(s.Skills)
	return s
}

// Store is the catalog repository used by the HTTP layer. Implementations
// return copies; callers may modify what they get back.
type Store interface {
	ListInternships(ctx context.Context) ([]Internship, error)
	GetInternship(ctx context.Context, id int) (Internship, error)
	ListStudents(ctx context.Context) ([]Student, error)
	GetStudent(ctx context.Context, id string) (Student, error)
	CreateStudent(ctx context.Context, name string, skills []string) (Student, error)
}

// DefaultInternships is the catalog seeded into empty stores.
func DefaultInternships() []Internship {
	return []Internship{
		{ID: 1, Title: "Data Science Intern", Ministry: "Ministry of Electronics and Information Technology", Location: "New Delhi",
			RequiredSkills: []string{"Python", "Data Analysis", "Machine Learning"}},
		{ID: 2, Title: "Frontend Developer Intern", Ministry: "Ministry of Education", Location: "Bangalore",
			RequiredSkills: []string{"React", "JavaScript", "UI/UX"}},
		{ID: 3, Title: "AI Research Intern", Ministry: "Ministry of Science & Technology", Location: "Hyderabad",
			RequiredSkills: []string{"Python", "Deep Learning", "Research"}},
		{ID: 4, Title: "Project Management Intern", Ministry: "Ministry of Corporate Affairs", Location: "Mumbai",
			RequiredSkills: []string{"Project Management", "Communication", "Excel"}},
		{ID: 5, Title: "Cybersecurity Intern", Ministry: "Ministry of Home Affairs", Location: "New Delhi",
			RequiredSkills: []string{"Cybersecurity", "Python", "Networking"}},
		{ID: 6, Title: "Digital Marketing Intern", Ministry: "Ministry of Information & Broadcasting", Location: "Mumbai",
			RequiredSkills: []string{"Digital Marketing", "Social Media", "Content Writing"}},
		{ID: 7, Title: "Web Development Intern", Ministry: "National Informatics Centre", Location: "Pune",
			RequiredSkills: []string{"HTML", "CSS", "JavaScript", "React"}},
		{ID: 8, Title: "Data Analytics Intern", Ministry: "Ministry of Statistics & Programme Implementation", Location: "Chennai",
			RequiredSkills: []string{"Data Analysis", "Excel", "SQL", "Statistics"}},
	}
}

// DefaultStudents is the student list seeded into empty stores.
func DefaultStudents() []Student {
	return []Student{
		{ID: "1", Name: "Priya Sharma", Skills: []string{"Python", "Data Analysis", "React", "Project Management"}},
		{ID: "2", Name: "Aman Verma", Skills: []string{"Python", "Machine Learning", "Deep Learning"}},
		{ID: "3", Name: "Sneha Patel", Skills: []string{"React", "JavaScript", "UI/UX"}},
	}
}
