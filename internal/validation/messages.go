package validation

const (
	msgNameRequired   = "Name ist erforderlich"
	msgNameTooShort   = "Name muss mindestens %d Zeichen lang sein"
	msgNameTooLong    = "Name ist zu lang (max. %d Zeichen)"
	msgNameCharacters = "Name enthält ungültige Zeichen"

	msgEmailRequired = "E-Mail ist erforderlich"
	msgEmailInvalid  = "Bitte geben Sie eine gültige E-Mail-Adresse ein"
	msgEmailTooLong  = "E-Mail-Adresse ist zu lang"

	msgNotesTooLong = "Hinweise sind zu lang (max. %d Zeichen)"

	msgDateRequired      = "Datum ist erforderlich"
	msgDateFormat        = "Ungültiges Datumsformat"
	msgDateInvalid       = "Ungültiges Datum"
	msgDatePast          = "Datum darf nicht in der Vergangenheit liegen"
	msgDateBeyondHorizon = "Datum darf nicht mehr als %d Tage in der Zukunft liegen"

	msgTimeRequired = "Uhrzeit ist erforderlich"
	msgTimeFormat   = "Ungültiges Zeitformat"
	msgTimeHours    = "Uhrzeit muss zwischen %s und %s liegen"
	msgTimeGrid     = "Uhrzeit muss in %d-Minuten-Intervallen sein"

	msgServiceRequired = "Service ist erforderlich"
	msgServiceInvalid  = "Ungültiger Service"
	msgServiceUnknown  = "Ungültiger Service ausgewählt"

	msgAppointmentIDRequired = "Termin-ID ist erforderlich"
)
