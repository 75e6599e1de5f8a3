package star

// Names maps HIP identifiers to IAU proper names for the bright stars the
// UI labels and the nearest-named-star query can resolve.
var Names = map[int]string{
	32349:  "Sirius",
	30438:  "Canopus",
	69673:  "Arcturus",
	91262:  "Vega",
	24608:  "Capella",
	24436:  "Rigel",
	37279:  "Procyon",
	7588:   "Achernar",
	27989:  "Betelgeuse",
	68702:  "Hadar",
	97649:  "Altair",
	60718:  "Acrux",
	21421:  "Aldebaran",
	80763:  "Antares",
	65474:  "Spica",
	37826:  "Pollux",
	113368: "Fomalhaut",
	102098: "Deneb",
	62434:  "Mimosa",
	49669:  "Regulus",
	33579:  "Adhara",
	36850:  "Castor",
	61084:  "Gacrux",
	85927:  "Shaula",
	25336:  "Bellatrix",
	25428:  "Elnath",
	45238:  "Miaplacidus",
	26311:  "Alnilam",
	109268: "Alnair",
	26727:  "Alnitak",
	62956:  "Alioth",
	54061:  "Dubhe",
	15863:  "Mirfak",
	34444:  "Wezen",
	90185:  "Kaus Australis",
	67301:  "Alkaid",
	28360:  "Menkalinan",
	82273:  "Atria",
	31681:  "Alhena",
	11767:  "Polaris",
	46390:  "Alphard",
	9884:   "Hamal",
	3419:   "Diphda",
	92855:  "Nunki",
	65378:  "Mizar",
	677:    "Alpheratz",
	5447:   "Mirach",
	72607:  "Kochab",
	86032:  "Rasalhague",
	14576:  "Algol",
	57632:  "Denebola",
	76267:  "Alphecca",
	25930:  "Mintaka",
	100453: "Sadr",
	87833:  "Eltanin",
	3179:   "Schedar",
	746:    "Caph",
	53910:  "Merak",
	58001:  "Phecda",
	59774:  "Megrez",
	27366:  "Saiph",
	107315: "Enif",
	113881: "Scheat",
	113963: "Markab",
	50583:  "Algieba",
	78401:  "Dschubba",
	30324:  "Mirzam",
	35904:  "Aludra",
	86228:  "Sargas",
	95947:  "Albireo",
	92420:  "Sheliak",
	93194:  "Sulafat",
	4427:   "Navi",
	6686:   "Ruchbah",
	8886:   "Segin",
}

// NameOf returns the display name for a HIP id, or "" when none is known.
func NameOf(hip int) string {
	return Names[hip]
}
