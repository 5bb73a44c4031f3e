package feed

// Keyword lists are configuration data, carried verbatim. Matching is
// case-insensitive substring containment; a single hit suffices.

// nzKeywords marks an item as New Zealand related.
var nzKeywords = []string{
	"new zealand", "nz", "aotearoa",
	"auckland", "wellington", "christchurch", "hamilton", "tauranga",
	"dunedin", "palmerston north", "napier", "nelson", "rotorua",
	"new plymouth", "whangarei", "invercargill", "whanganui", "gisborne",
	"hastings", "timaru", "blenheim", "greymouth", "queenstown",
	"northland", "waikato", "bay of plenty", "hawkes bay", "hawke's bay",
	"taranaki", "manawatu", "wairarapa", "marlborough", "canterbury",
	"otago", "southland", "west coast", "fiordland", "coromandel",
	"mount maunganui", "papamoa", "tairua", "thames", "whitianga",
	"hauraki gulf", "hauraki", "waiheke", "great barrier", "rangitoto",
	"taupo", "masterton", "lower hutt", "upper hutt", "porirua",
	"kapiti", "levin", "feilding", "whakatane", "opotiki", "kawerau",
	"te puke", "katikati", "oamaru", "ashburton", "rangiora", "kaikoura",
	"picton", "motueka", "richmond", "westport", "hokitika", "reefton",
	"waimate", "gore", "balclutha", "alexandra", "cromwell", "wanaka",
	"te anau", "kaikohe", "kerikeri", "paihia", "dargaville", "kaitaia",
	"state highway", "sh1", "sh2", "sh3", "sh4", "sh5", "sh6",
	"north island", "south island", "stewart island",
	"kiwi", "maori", "māori", "iwi", "te reo",
}

// exclusionKeywords suppress sports, entertainment, lifestyle and
// routine-politics articles that would otherwise false-positive on the
// topic lists.
var exclusionKeywords = []string{
	// Sports
	"rugby", "cricket", "netball", "basketball", "football", "soccer",
	"all blacks", "black caps", "silver ferns", "breakers", "warriors",
	"nbl", "super rugby", "anb", "phoenix", "chiefs", "blues", "hurricanes",
	"crusaders", "highlanders", "sport", "match", "game", "tournament",
	"championship", "league", "cup final", "semifinal", "quarter-final",
	"played", "scored", "goal", "try", "wicket", "batting", "bowling",
	"coach", "player", "team", "fixture", "season", "halftime", "overtime",
	"36ers", "nba", "afl", "nrl", "a-league",
	// Entertainment
	"movie", "film", "album", "concert", "tour", "festival", "music",
	"celebrity", "actor", "actress", "singer", "band", "award",
	"grammy", "oscar", "emmy", "tv show", "reality tv", "streaming",
	// Lifestyle/Business
	"recipe", "restaurant", "review", "travel", "holiday", "vacation",
	"stock market", "shares", "investment", "property market", "real estate",
	"fashion", "beauty", "wellness", "fitness", "diet",
	// Politics (unless emergency)
	"election", "poll", "campaign", "candidate", "parliament", "mp ",
	"minister", "coalition", "opposition", "policy", "bill passed",
}

var incidentKeywords = []string{
	"incident", "emergency", "crash", "accident",
	"police", "rescue", "storm", "flood", "warning",
	"alert", "earthquake", "tsunami", "weather", "road closure",
	"missing", "serious", "death", "fatality", "injury",
	"landslide", "slip", "landslip", "evacuate", "evacuation",
	"cyclone", "tornado", "severe", "damage", "power outage",
	"road closed", "highway closed", "state highway", "trapped",
	"civil defence", "search and rescue", "metservice", "outbreak",
	"disease", "pandemic", "epidemic", "virus", "covid", "measles",
	"flooding", "heavy rain", "strong wind", "snowstorm", "blizzard",
	"hailstorm", "thunderstorm", "lightning strike", "wild weather",
	// Fire-related
	"fire", "blaze", "wildfire", "bushfire", "scrub fire", "house fire",
	"structure fire", "vegetation fire", "forest fire", "firefighters",
	"fenz", "fire and emergency", "arson", "flames", "burning",
	"fire crews", "fire brigade", "inferno",
}

var crimeKeywords = []string{
	"crime", "criminal", "arrest", "arrested", "charged", "court",
	"police", "robbery", "burglary", "theft", "stolen", "steal",
	"assault", "attack", "violent", "violence", "stabbing", "stabbed",
	"shooting", "shot", "gunshot", "firearm", "weapon",
	"homicide", "murder", "manslaughter", "death", "killed", "killing",
	"drugs", "meth", "methamphetamine", "cannabis", "cocaine", "drug bust",
	"fraud", "scam", "scammer", "swindle", "money laundering",
	"gang", "gangs", "organised crime", "syndicate",
	"protest", "protests", "protester", "protesters", "demonstration",
	"riot", "rioting", "unrest", "civil unrest",
	"occupation", "blockade", "disruption",
	"threatening", "threat", "intimidation", "harassment",
	"kidnapping", "abduction", "hostage",
	"arson", "vandalism", "graffiti", "property damage",
	"domestic violence", "family harm", "restraining order",
	"sexual assault", "indecent", "offending",
	"wanted", "fugitive", "manhunt", "on the run",
}

var fireKeywords = []string{
	"fire", "fires", "blaze", "blazing", "burning", "burnt", "burned",
	"wildfire", "wildfires", "bushfire", "bush fire", "scrub fire",
	"house fire", "building fire", "structure fire", "factory fire",
	"car fire", "vehicle fire", "truck fire",
	"forest fire", "grass fire", "vegetation fire",
	"flames", "inferno", "engulfed", "gutted",
	"fire crews", "firefighters", "fire brigade", "fire service",
	"fire emergency", "fenz", "fire and emergency",
	"smoke", "evacuation", "evacuated",
	"arson", "deliberately lit", "suspicious fire",
}
