package model

// Class labels in index order. Index 0 is the negative class so that the
// logistic output maps directly to the positive probability.
const (
	classNegative = "negativo"
	classPositive = "positivo"
)

var classLabels = []string{classNegative, classPositive}

// bootstrapExample pairs a corpus text with its polarity class index.
type bootstrapExample struct {
	Text  string
	Class int
}

// bootstrapCorpus is the embedded labeled corpus used to train the bootstrap
// model when no persisted artifact exists on disk.
var bootstrapCorpus = []bootstrapExample{
	{"Este producto es excelente, muy recomendado", 1},
	{"No me gustó para nada, muy malo", 0},
	{"Producto increíble, superó mis expectativas", 1},
	{"Terrible calidad, no lo compren", 0},
	{"Buena relación calidad-precio", 1},
	{"Decepcionante, esperaba más", 0},
	{"Fantástico servicio y producto", 1},
	{"Pésima experiencia de compra", 0},
}
