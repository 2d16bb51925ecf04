package validation

// User facing messages. The landing pages are Dutch.
const (
	MsgPhoneTooShort      = "Telefoonnummer is te kort"
	MsgPhoneInvalid       = "Ongeldig Nederlands telefoonnummerformaat. Gebruik 06XXXXXXXX, 0031XXXXXXXXX, of +31XXXXXXXXX"
	MsgEmailInvalid       = "Ongeldig e-mailadres"
	MsgPostcodeInvalid    = "Ongeldig Nederlands postcode formaat. Gebruik formaat: 1234 AB"
	MsgHouseNumberInvalid = "Ongeldig huisnummer"
	MsgPostcodeValid      = "Postcode en huisnummer zijn geldig"
)
