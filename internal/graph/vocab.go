package graph

// Namespaces used by the GGD graph.
const (
	RDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	OWL    = "http://www.w3.org/2002/07/owl#"
	XSD    = "http://www.w3.org/2001/XMLSchema#"
	Schema = "http://schema.org/"
	SEM    = "http://semanticweb.cs.vu.nl/2009/11/sem/"
	FOAF   = "http://xmlns.com/foaf/0.1/"
	VOID   = "http://rdfs.org/ns/void#"
	PNV    = "https://w3id.org/pnv#"
	Bio    = "http://purl.org/vocab/bio/0.1/"
	KBDef  = "http://data.bibliotheken.nl/def#"

	GGD    = "http://data.bibliotheken.nl/id/dataset/ggd/"
	GGDDoc = "http://data.bibliotheken.nl/doc/dataset/ggd/"
)

// Prefixes maps namespaces to the prefixes used in Turtle output.
var Prefixes = map[string]string{
	RDF:    "rdf",
	RDFS:   "rdfs",
	OWL:    "owl",
	XSD:    "xsd",
	Schema: "schema",
	SEM:    "sem",
	FOAF:   "foaf",
	VOID:   "void",
	PNV:    "pnv",
	Bio:    "bio",
	KBDef:  "kbdef",
	GGDDoc: "ggddoc",
}

const (
	Type = RDF + "type"

	Label   = RDFS + "label"
	Comment = RDFS + "comment"

	SameAs = OWL + "sameAs"

	XSDDate = XSD + "date"

	Book             = Schema + "Book"
	ArchiveComponent = Schema + "ArchiveComponent"
	Role             = Schema + "Role"
	Person           = Schema + "Person"
	PublicationEvent = Schema + "PublicationEvent"
	PropertyValue    = Schema + "PropertyValue"

	Name             = Schema + "name"
	Description      = Schema + "description"
	Author           = Schema + "author"
	About            = Schema + "about"
	InLanguage       = Schema + "inLanguage"
	Publication      = Schema + "publication"
	PublishedBy      = Schema + "publishedBy"
	NumberOfPages    = Schema + "numberOfPages"
	WorkExample      = Schema + "workExample"
	ExampleOfWork    = Schema + "exampleOfWork"
	RoleName         = Schema + "roleName"
	Value            = Schema + "value"
	Identifier       = Schema + "identifier"
	ItemLocation     = Schema + "itemLocation"
	HoldingArchive   = Schema + "holdingArchive"
	SubjectOf        = Schema + "subjectOf"
	DateCreated      = Schema + "dateCreated"
	DateModified     = Schema + "dateModified"
	BibliographicFmt = KBDef + "bibliographicFormat"
	CollationFormula = KBDef + "hasCollationalFormula"

	Event                     = SEM + "Event"
	EventType                 = SEM + "EventType"
	HasTimeStamp              = SEM + "hasTimeStamp"
	HasEarliestBeginTimeStamp = SEM + "hasEarliestBeginTimeStamp"
	HasLatestEndTimeStamp     = SEM + "hasLatestEndTimeStamp"
	HasPlace                  = SEM + "hasPlace"
	EventTypeProp             = SEM + "eventType"

	Document         = FOAF + "Document"
	PrimaryTopic     = FOAF + "primaryTopic"
	IsPrimaryTopicOf = FOAF + "isPrimaryTopicOf"

	InDataset = VOID + "inDataset"

	PersonName      = PNV + "PersonName"
	HasName         = PNV + "hasName"
	LiteralName     = PNV + "literalName"
	GivenName       = PNV + "givenName"
	Initials        = PNV + "initials"
	SurnamePrefix   = PNV + "surnamePrefix"
	BaseSurname     = PNV + "baseSurname"
	Surname         = PNV + "surname"
	Patronym        = PNV + "patronym"
	PrefixName      = PNV + "prefix"
	Suffix          = PNV + "suffix"
)
