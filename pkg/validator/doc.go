// Package validator implements the field checks of a contact form: required,
// email, phone, and length limits for names, subjects and free-form messages.
//
// All thresholds, patterns and user-facing texts live in Config, an immutable
// value passed explicitly wherever validation happens. DefaultConfig returns
// the shipped settings; tests derive variants with the With* helpers.
//
// # Rules
//
// Individual checks are exposed as Rule values (a Check func plus the
// ValidationError reported on failure), built by Config methods:
//
//	cfg := validator.DefaultConfig()
//	err := validator.Apply(
//	    cfg.Required("email", email),
//	    cfg.Email("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Fields() lists the failing fields
//	}
//
// # Field dispatch
//
// Config.Validate applies the contact form policy to one trimmed value:
//
//   - a required field with an empty value fails with KindRequired and no other
//     rule runs;
//   - an empty optional field is valid;
//   - email and tel fields are matched against EmailPattern and PhonePattern;
//   - text fields get a minimum length when their name contains "name" (2) or
//     "subject" (3), compared case-insensitively; other text fields accept any
//     content;
//   - textarea values must be between MinMessageLength and MaxMessageLength
//     characters, both bounds inclusive;
//   - any other type is valid.
//
// Validation failures are values, never panics. ValidationErrors implements
// error so a whole form can be reported through a single error return.
package validator
