package star

// Constellation is a constellation figure as line segments between catalog
// stars, each segment a pair of HIP identifiers.
type Constellation struct {
	Name     string
	Segments [][2]int
}

// Constellations holds the figures drawn and hit-tested by the viewer.
// Segments are short by construction; none of the shipped figures crosses
// RA 0h, which the segment distance approximation does not handle.
var Constellations = []Constellation{
	{
		Name: "Orion",
		Segments: [][2]int{
			{27989, 25336}, // Betelgeuse - Bellatrix
			{25336, 25930}, // Bellatrix - Mintaka
			{25930, 26311}, // Mintaka - Alnilam
			{26311, 26727}, // Alnilam - Alnitak
			{26727, 27989}, // Alnitak - Betelgeuse
			{26727, 27366}, // Alnitak - Saiph
			{27366, 24436}, // Saiph - Rigel
			{24436, 25930}, // Rigel - Mintaka
		},
	},
	{
		Name: "Ursa Major",
		Segments: [][2]int{
			{54061, 53910}, // Dubhe - Merak
			{53910, 58001}, // Merak - Phecda
			{58001, 59774}, // Phecda - Megrez
			{59774, 54061}, // Megrez - Dubhe
			{59774, 62956}, // Megrez - Alioth
			{62956, 65378}, // Alioth - Mizar
			{65378, 67301}, // Mizar - Alkaid
		},
	},
	{
		Name: "Cassiopeia",
		Segments: [][2]int{
			{746, 3179},  // Caph - Schedar
			{3179, 4427}, // Schedar - Navi
			{4427, 6686}, // Navi - Ruchbah
			{6686, 8886}, // Ruchbah - Segin
		},
	},
	{
		Name: "Crux",
		Segments: [][2]int{
			{60718, 61084}, // Acrux - Gacrux
			{62434, 59747}, // Mimosa - Imai
		},
	},
	{
		Name: "Cygnus",
		Segments: [][2]int{
			{102098, 100453}, // Deneb - Sadr
			{100453, 95947},  // Sadr - Albireo
			{100453, 97165},  // Sadr - Fawaris
			{100453, 102488}, // Sadr - Aljanah
		},
	},
	{
		Name: "Lyra",
		Segments: [][2]int{
			{91262, 92420}, // Vega - Sheliak
			{92420, 93194}, // Sheliak - Sulafat
			{93194, 91262}, // Sulafat - Vega
		},
	},
	{
		Name: "Canis Major",
		Segments: [][2]int{
			{32349, 30324}, // Sirius - Mirzam
			{32349, 34444}, // Sirius - Wezen
			{34444, 33579}, // Wezen - Adhara
			{34444, 35904}, // Wezen - Aludra
		},
	},
	{
		Name: "Scorpius",
		Segments: [][2]int{
			{78401, 80763}, // Dschubba - Antares
			{80763, 86228}, // Antares - Sargas
			{86228, 85927}, // Sargas - Shaula
		},
	},
}
