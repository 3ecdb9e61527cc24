// Package domain holds contact form types
package domain

import "context"

// SubmitInput is the body of POST /contact
type SubmitInput struct {
	Name    string `json:"name"    validate:"required,notblank,max=120" example:"Sam Rivera"`
	Email   string `json:"email"   validate:"required,email,max=254"    example:"sam@example.org"`
	Subject string `json:"subject" validate:"required,notblank,max=200" example:"Dataset access"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

// Receipt acknowledges a submission
type Receipt struct {
	Success      bool   `json:"success"      example:"true"`
	Message      string `json:"message"      example:"Thanks, we will get back to you soon"`
	SubmissionID string `json:"submissionId" example:"9f0b8c1e-4b0e-4a8e-8f57-0c4a0d7d2b11"`
}

// ServicePort is the contact use case surface
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput) (Receipt, error)
}
