package constants

// Canonical document type names. The registry declares them most-specific
// first; validation groups reference them by name.
const (
	DocAutorizacionSeguros     = "AUTORIZACION_SEGUROS"
	DocDivulgacionesTitulo     = "DIVULGACIONES_TITULO"
	DocDivulgacionesProductos  = "DIVULGACIONES_PRODUCTOS"
	DocCartaSolicitud          = "CARTA_SOLICITUD"
	DocEstudioTitulo           = "ESTUDIO_TITULO"
	DocEstudioTituloContinuada = "ESTUDIO_TITULO_CONTINUACION"
)
