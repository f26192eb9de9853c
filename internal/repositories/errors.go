package repositories

import "shuttle/internal/domain"

var errNoDB = domain.InternalError{Msg: "database not connected"}
