// Package validation checks request payloads before anything is persisted.
// Each input type carries a pure Validate method returning the first violated
// constraint as an error, or nil. Nothing here touches the store.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxTitleLen     = 200
	MaxCategoryName = 50
	MaxCategoryDesc = 200
	MaxCommentLen   = 500
	MinPasswordLen  = 6
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return errors.New("username is required")
	}
	if err := validEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	if err := validEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type PostInput struct {
	Title    string
	Content  string
	Category string
}

func (in PostInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if len(in.Title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}
	if strings.TrimSpace(in.Content) == "" {
		return errors.New("content is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if len(in.Name) > MaxCategoryName {
		return fmt.Errorf("name must not exceed %d characters", MaxCategoryName)
	}
	if len(in.Description) > MaxCategoryDesc {
		return fmt.Errorf("description must not exceed %d characters", MaxCategoryDesc)
	}
	return nil
}

type CommentInput struct {
	Post    string `json:"post"`
	Content string `json:"content"`
}

func (in CommentInput) Validate() error {
	if strings.TrimSpace(in.Post) == "" {
		return errors.New("post is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return errors.New("content is required")
	}
	if len(in.Content) > MaxCommentLen {
		return fmt.Errorf("content must not exceed %d characters", MaxCommentLen)
	}
	return nil
}

// PostUpdateInput carries only the fields present in an update request;
// nil means the field was omitted and the stored value is kept.
type PostUpdateInput struct {
	Title    *string
	Content  *string
	Category *string
}

func (in PostUpdateInput) Validate() error {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return errors.New("title is required")
		}
		if len(*in.Title) > MaxTitleLen {
			return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
		}
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return errors.New("content is required")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

type CategoryUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (in CategoryUpdateInput) Validate() error {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return errors.New("name is required")
		}
		if len(*in.Name) > MaxCategoryName {
			return fmt.Errorf("name must not exceed %d characters", MaxCategoryName)
		}
	}
	if in.Description != nil && len(*in.Description) > MaxCategoryDesc {
		return fmt.Errorf("description must not exceed %d characters", MaxCategoryDesc)
	}
	return nil
}

type CommentUpdateInput struct {
	Content *string `json:"content"`
}

func (in CommentUpdateInput) Validate() error {
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return errors.New("content is required")
		}
		if len(*in.Content) > MaxCommentLen {
			return fmt.Errorf("content must not exceed %d characters", MaxCommentLen)
		}
	}
	return nil
}

// validEmail is a shape check, not RFC 5322. Deliverability is the mail
// system's problem.
func validEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return errors.New("email must be a valid email address")
	}
	return nil
}
