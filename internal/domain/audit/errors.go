package audit

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var ErrEntityRequired = apperror.New(apperror.KindInvalidInput, "entity_type and entity_id are required")
