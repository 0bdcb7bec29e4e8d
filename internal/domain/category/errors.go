package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("leave category not found")
	ErrInvalidCategory  = errors.New("leave category does not exist or is inactive")
	ErrCategoryInUse    = errors.New("leave category is referenced by an allotment and cannot be changed")
	ErrCategoryExists   = errors.New("a leave category with this name already exists")
)
