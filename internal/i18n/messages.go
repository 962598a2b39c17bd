package i18n

// Message keys referenced from the telegram handlers.
// Do not rename a key without updating the handler that sends it.
const (
	MsgWelcome           = "welcome"
	MsgAskProvider       = "ask_provider"
	MsgAskEntity         = "ask_entity"
	MsgReviewHeader      = "review_header"
	MsgSubmittedOK       = "submitted_ok"
	MsgSubmitFailed      = "submit_failed"
	MsgDeliveryFailed    = "delivery_failed"
	MsgDraftCancelled    = "draft_cancelled"
	MsgNoSubmissions     = "no_submissions"
	MsgSubmissionsHeader = "submissions_header"
	MsgResendOK          = "resend_ok"
	MsgObservationSaved  = "observation_saved"
	MsgNotInAssessment   = "not_in_assessment"
	MsgLanguageSet       = "language_set"
	MsgQuestionHeader    = "question_header"
	MsgSummaryTitle      = "summary_title"

	BtnNewAssessment = "btn_new_assessment"
	BtnMySubmissions = "btn_my_submissions"
	BtnLanguage      = "btn_language"
	BtnSubmit        = "btn_submit"
	BtnCancel        = "btn_cancel"
	BtnResend        = "btn_resend"
)

var messages = map[string]Text{
	MsgWelcome: {
		EN: "Welcome to the DORA Analyzer. Assess an ICT provider against the DORA requirements and receive a PDF report.",
		ES: "Bienvenido al Analizador DORA. Evalúe un proveedor TIC frente a los requisitos de DORA y reciba un informe PDF.",
	},
	MsgAskProvider: {
		EN: "Please enter the ICT provider name.",
		ES: "Por favor, introduzca el nombre del proveedor TIC.",
	},
	MsgAskEntity: {
		EN: "Please enter the financial entity name.",
		ES: "Por favor, introduzca el nombre de la entidad financiera.",
	},
	MsgReviewHeader: {
		EN: "All questions answered. Review the summary below and submit the assessment.",
		ES: "Todas las preguntas respondidas. Revise el resumen y envíe la evaluación.",
	},
	MsgSubmittedOK: {
		EN: "Assessment submitted. The report has been delivered.",
		ES: "Evaluación enviada. El informe ha sido entregado.",
	},
	MsgSubmitFailed: {
		EN: "The assessment could not be saved. Please try submitting again.",
		ES: "La evaluación no se pudo guardar. Intente enviarla de nuevo.",
	},
	MsgDeliveryFailed: {
		EN: "The assessment was saved, but the report could not be delivered. You can resend it from \"My submissions\".",
		ES: "La evaluación se ha guardado, pero el informe no se pudo entregar. Puede reenviarlo desde \"Mis evaluaciones\".",
	},
	MsgDraftCancelled: {
		EN: "Assessment cancelled.",
		ES: "Evaluación cancelada.",
	},
	MsgNoSubmissions: {
		EN: "You have no submitted assessments yet.",
		ES: "Todavía no tiene evaluaciones enviadas.",
	},
	MsgSubmissionsHeader: {
		EN: "Your submitted assessments:",
		ES: "Sus evaluaciones enviadas:",
	},
	MsgResendOK: {
		EN: "The report has been resent.",
		ES: "El informe ha sido reenviado.",
	},
	MsgObservationSaved: {
		EN: "Observation saved for the previous question.",
		ES: "Observación guardada para la pregunta anterior.",
	},
	MsgNotInAssessment: {
		EN: "Start a new assessment with the button below /start.",
		ES: "Inicie una nueva evaluación con el botón bajo /start.",
	},
	MsgLanguageSet: {
		EN: "Language switched to English.",
		ES: "Idioma cambiado a español.",
	},
	MsgQuestionHeader: {
		EN: "Question %d of %d",
		ES: "Pregunta %d de %d",
	},
	MsgSummaryTitle: {
		EN: "DORA assessment — %s / %s",
		ES: "Evaluación DORA — %s / %s",
	},

	BtnNewAssessment: {EN: "New assessment", ES: "Nueva evaluación"},
	BtnMySubmissions: {EN: "My submissions", ES: "Mis evaluaciones"},
	BtnLanguage:      {EN: "Español", ES: "English"},
	BtnSubmit:        {EN: "Submit", ES: "Enviar"},
	BtnCancel:        {EN: "Cancel", ES: "Cancelar"},
	BtnResend:        {EN: "Resend report", ES: "Reenviar informe"},
}

// T returns the bot message for the given key and locale.
// Unknown keys come back as the key itself so a miss is visible in the chat.
func T(key string, loc Locale) string {
	t, ok := messages[key]
	if !ok {
		return key
	}
	return t.In(loc)
}
