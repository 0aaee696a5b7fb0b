package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrUniqueIDExists     = errors.New("employee unique id already exists")
	ErrEmailExists        = errors.New("employee email already registered")
	ErrInvalidImageType   = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrImageTooLarge      = errors.New("image must not exceed 5MB")
	ErrPortalLoginMissing = errors.New("portal password requires an email or unique id")
	ErrUnknownReference   = errors.New("department, designation or schedule does not exist")
)
