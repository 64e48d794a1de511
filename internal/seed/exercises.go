// Package seed holds the built-in exercise encyclopedia used to populate
// an empty library.
package seed

import "github.com/meltforce/todoplus/internal/models"

type entry struct {
	muscle, name, exerciseType, pattern, equipment, subtype string
}

// The encyclopedia keeps its original Spanish taxonomy labels; exercise
// names stay in common gym English.
var catalog = []entry{
	{"Espalda", "Pull-up", "Tirón vertical", "Peso corporal", "Barra fija/anillas", "Prono, ancho, medio, estrecho; sin lastre"},
	{"Espalda", "Weighted pull-up", "Tirón vertical", "Peso corporal + lastre", "Cinturón, chaleco", "Igual que pull-up con peso adicional"},
	{"Espalda", "Chin-up", "Tirón vertical", "Peso corporal", "Barra fija", "Supino, ancho/estrecho"},
	{"Espalda", "Lat pulldown wide grip", "Tirón vertical", "Polea", "Lat machine", "Agarres ancho, prono"},
	{"Espalda", "Lat pulldown close/neutral", "Tirón vertical", "Polea", "Lat machine", "Barra V/neutral"},
	{"Espalda", "Barbell bent-over row", "Tirón horizontal", "Barra", "Libre", "Tronco inclinado, agarre prono"},
	{"Espalda", "One-arm dumbbell row", "Tirón horizontal", "Mancuerna", "Banco", "Clásico en banco con apoyo"},
	{"Espalda", "Seated cable row (V-bar)", "Tirón horizontal", "Polea", "Polea baja", "Agarre neutro estrecho"},
	{"Espalda", "Deadlift convencional", "Bisagra", "Barra", "Libre", "Dorsales, erectores, trapecio"},
	{"Espalda", "Face pull", "Tirón alto", "Polea", "Polea media/alta", "Deltoide posterior + trapecio"},

	{"Pecho", "Bench press (flat)", "Empuje horizontal", "Barra", "Banco plano", "Pectoral esternal (medio/inferior)"},
	{"Pecho", "Incline bench press", "Empuje horizontal inclinado", "Barra", "Banco inclinado", "Énfasis pectoral superior (clavicular)"},
	{"Pecho", "Decline bench press", "Empuje horizontal declinado", "Barra", "Banco declinado", "Más pectoral inferior"},
	{"Pecho", "DB bench press (flat)", "Empuje horizontal", "Mancuernas", "Banco plano", "Mayor rango que barra"},
	{"Pecho", "DB incline bench press", "Empuje horizontal inclinado", "Mancuernas", "Banco inclinado", "Pectoral superior"},
	{"Pecho", "Push-up", "Empuje horizontal", "Peso corporal", "Suelo", "Clásico; medio/inferior según ángulo"},
	{"Pecho", "Chest dip", "Empuje vertical / diagonal", "Peso corporal", "Barras paralelas", "Inclinando torso adelante, énfasis pectoral inferior"},
	{"Pecho", "Cable crossover (classic)", "Apertura horizontal", "Polea", "Dos poleas", "Desde alto a bajo o medio; muy usado"},
	{"Pecho", "DB fly (flat)", "Apertura horizontal", "Mancuernas", "Banco plano", "Estiramiento pec esternal"},
	{"Pecho", "Pec deck fly (machine)", "Apertura horizontal", "Máquina", "Pec-deck", "Aislante de pecho"},

	{"Hombro", "Barbell overhead press (standing)", "Empuje vertical", "Barra", "Libre", "Press militar clásico"},
	{"Hombro", "Seated DB shoulder press", "Empuje vertical", "Mancuernas", "Sentado", "Variante muy usada"},
	{"Hombro", "Arnold press (DB)", "Empuje vertical", "Mancuernas", "Sentado/de pie", "Rotación interna-externa, mucho anterior"},
	{"Hombro", "DB lateral raise (de pie)", "Abducción", "Mancuernas", "Libre", "Deltoide lateral"},
	{"Hombro", "DB front raise", "Elevación frontal", "Mancuernas", "Libre", "Deltoide anterior"},
	{"Hombro", "DB rear delt fly (bent-over)", "Abducción horizontal", "Mancuernas", "Tronco inclinado", "Clásico posterior"},
	{"Hombro", "Cable lateral raise (low pulley)", "Abducción", "Polea", "Baja", "Excelente tensión continua"},

	{"Bíceps", "Barbell curl (recta)", "Flexión codo", "Barra", "Libre", "Curl clásico con barra recta"},
	{"Bíceps", "EZ bar curl", "Flexión codo", "Barra EZ", "Libre", "Mismas mecánicas, menos estrés muñeca"},
	{"Bíceps", "Standing DB curl", "Flexión codo", "Mancuernas", "Libre", "Alterno o simultáneo, supino"},
	{"Bíceps", "Hammer curl", "Flexión codo", "Mancuernas", "Libre", "Agarre neutro (braquiorradial/braquial)"},
	{"Bíceps", "Incline DB curl", "Flexión codo", "Mancuernas", "Banco inclinado", "Mayor estiramiento bíceps"},
	{"Bíceps", "Concentration curl", "Flexión codo", "Mancuernas", "Sentado", "Brazo apoyado en muslo interno"},
	{"Bíceps", "Cable curl", "Flexión codo", "Polea", "Baja", "Barra recta/EZ, de pie"},

	{"Tríceps", "Close-grip bench press", "Empuje horizontal", "Barra", "Banca", "Manos estrechas, gran carga para tríceps"},
	{"Tríceps", "Lying barbell triceps extension (skullcrusher)", "Extensión codo", "Barra", "Banca plana", "Flex/extensión codo, barra hacia frente/cabeza"},
	{"Tríceps", "Overhead DB triceps extension", "Extensión codo", "Mancuernas", "De pie/sentado", "Un DB con ambas manos o uno por mano"},
	{"Tríceps", "DB kickback", "Extensión codo", "Mancuernas", "Banco/de pie", "Extensión hacia atrás"},
	{"Tríceps", "Triceps pushdown (cable)", "Extensión codo", "Polea", "Alta, barra", "Clásico de extensión, agarre prono"},
	{"Tríceps", "Rope pushdown", "Extensión codo", "Polea", "Alta, cuerda", "Separa cuerdas al final"},
	{"Tríceps", "Parallel bar dip (triceps)", "Empuje vertical", "Peso corporal", "Barras paralelas", "Tronco más vertical, codos pegados"},

	{"Cuádriceps", "Back squat", "Sentadilla", "Barra", "Rack", "Barra alta o baja"},
	{"Cuádriceps", "Front squat", "Sentadilla frontal", "Barra", "Rack", "Más énfasis en cuádriceps"},
	{"Cuádriceps", "Goblet squat", "Sentadilla", "Mancuernas/Kettlebell", "Cargada frontal", "Buen patrón para quad"},
	{"Cuádriceps", "Leg extension machine", "Extensión rodilla", "Máquina", "Selectorizada", "Aíslante de cuádriceps"},
	{"Cuádriceps", "45° leg press", "Prensa piernas", "Máquina", "Sled 45°", "Trabajo global pierna, buen quad"},
	{"Cuádriceps", "Hack squat machine", "Sentadilla guiada", "Máquina", "Hack", "Gran enfoque en cuádriceps según pies"},
	{"Cuádriceps", "Walking lunge", "Zancada", "Mancuernas", "Libre", "Clásico para quad"},
	{"Cuádriceps", "Bulgarian split squat", "Zancada unilateral", "Mancuernas", "Pie trasero elevado", "Muy usado para quad"},

	{"Isquiotibiales", "Romanian deadlift", "Bisagra", "Barra", "Libre", "Foco isquios/glúteo y erectores"},
	{"Isquiotibiales", "Stiff-leg deadlift", "Bisagra", "Barra", "Libre", "Piernas casi rectas, más isquios"},
	{"Isquiotibiales", "Lying leg curl machine", "Flexión rodilla", "Máquina", "Tumbado", "Aislante clásico de isquios"},
	{"Isquiotibiales", "Seated leg curl machine", "Flexión rodilla", "Máquina", "Sentado", "Isquios en posición estirada"},
	{"Isquiotibiales", "DB Romanian deadlift", "Bisagra", "Mancuernas", "Libre", "Variante unilateral o bilateral"},

	{"Glúteo", "Hip thrust (barra)", "Extensión cadera", "Barra", "Banco", "Máximo glúteo aislado"},
	{"Glúteo", "Glute bridge", "Extensión cadera", "Peso corporal", "Suelo", "Versión básica del hip thrust"},
	{"Glúteo", "Cable kickback", "Extensión cadera", "Polea", "Baja, tobillera", "Patada atrás con cable"},
	{"Glúteo", "Hip abduction machine", "Abducción cadera", "Máquina", "Selectorizada", "Glúteo medio principalmente"},

	{"Pantorrilla", "Standing calf raise (machine)", "Flexión plantar", "Máquina", "Selectorizada", "Rodillas extendidas, gastrocnemios"},
	{"Pantorrilla", "Seated calf raise machine", "Flexión plantar", "Máquina", "Sentado", "Rodilla flexionada, más sóleo"},
	{"Pantorrilla", "Leg press calf raise", "Flexión plantar", "Máquina", "Leg press", "Usando la prensa para gemelos"},

	{"Abdomen", "Crunch", "Flexión tronco", "Peso corporal", "Suelo", "Recto abdominal superior"},
	{"Abdomen", "Plank", "Anti-extensión", "Peso corporal", "Suelo", "Plancha frontal clásica"},
	{"Abdomen", "Hanging leg raise", "Elevación cadera", "Peso corporal", "Barra", "Piernas rectas, muy demandante"},
	{"Abdomen", "Russian twist (BW)", "Rotación", "Peso corporal", "Suelo", "Oblicuos"},
	{"Abdomen", "Cable crunch (kneeling)", "Flexión tronco", "Polea", "Polea alta, cuerda", "Muy popular para recto"},
	{"Abdomen", "Ab wheel rollout", "Anti-extensión", "Peso corporal", "Rueda/barra", "Muy exigente para core"},
	{"Abdomen", "Side plank", "Anti-flexión lateral", "Peso corporal", "Suelo", "Oblicuos/transverso"},
}

// Exercises returns the built-in catalog as insertable models. IDs are left
// nil so the store assigns them.
func Exercises() []models.Exercise {
	out := make([]models.Exercise, 0, len(catalog))
	for _, e := range catalog {
		subtype := e.subtype
		out = append(out, models.Exercise{
			Name:         e.name,
			Muscle:       e.muscle,
			ExerciseType: e.exerciseType,
			Pattern:      e.pattern,
			Equipment:    e.equipment,
			Subtype:      &subtype,
		})
	}
	return out
}
