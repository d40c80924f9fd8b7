package console

import "strings"

// annotationDataEscaper applies the escaping GitHub Actions requires for
// workflow command data. Percent must be escaped first, which Replacer
// guarantees by replacing in a single pass.
var annotationDataEscaper = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
)

// FormatErrorAnnotation formats a message as a GitHub Actions error
// annotation (::error::). The runner surfaces these in the job summary and
// on the affected pull request.
func FormatErrorAnnotation(message string) string {
	return "::error::" + annotationDataEscaper.Replace(message)
}

// FormatWarningAnnotation formats a message as a GitHub Actions warning
// annotation (::warning::).
func FormatWarningAnnotation(message string) string {
	return "::warning::" + annotationDataEscaper.Replace(message)
}

// FormatNoticeAnnotation formats a message as a GitHub Actions notice
// annotation (::notice::).
func FormatNoticeAnnotation(message string) string {
	return "::notice::" + annotationDataEscaper.Replace(message)
}
