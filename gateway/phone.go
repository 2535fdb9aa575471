package gateway

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/phoneconnect/dial/api/errorkinds"
)

// ValidatePhone accepts E.164-like numbers: an optional '+' followed by 7 to 15 digits.
func ValidatePhone(number string) error {
	digits := number
	if len(digits) > 0 && digits[0] == '+' {
		digits = digits[1:]
	}

	valid := len(digits) >= 7 && len(digits) <= 15
	for i := 0; valid && i < len(digits); i++ {
		valid = digits[i] >= '0' && digits[i] <= '9'
	}
	if valid {
		return nil
	}

	return fault.Wrap(errorkinds.ErrInvalidPhoneNumber,
		fctx.With(fctx.WithMeta(context.Background(), "number", number)),
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc("invalid phone number",
			"Invalid phone number '"+number+"'. Use E.164 format, e.g. +919876543210"),
	)
}
