package schema

// Layer is the closed set of architectural layers a class or file can be
// assigned to. A class's layer is inferred once per extraction pass and is
// immutable afterwards.
type Layer string

// All layers supported.
const (
	ControllerLayer Layer = "controller"
	ServiceLayer    Layer = "service"
	RepositoryLayer Layer = "repository"
	DomainLayer     Layer = "domain"
	UsecaseLayer    Layer = "usecase"
	UnknownLayer    Layer = "unknown"
)

// AllLayers lists every layer in canonical order.
var AllLayers = []Layer{
	ControllerLayer,
	ServiceLayer,
	RepositoryLayer,
	DomainLayer,
	UsecaseLayer,
	UnknownLayer,
}

// Key returns the feature key for the layer's per-layer counter.
func (l Layer) Key() string {
	return string(l) + "_layer"
}

// EdgeKey returns the feature key for a directed inter-layer reference
// from src to tgt, e.g. "controller_layer_to_service_layer".
func EdgeKey(src, tgt Layer) string {
	return src.Key() + "_to_" + tgt.Key()
}

// Per-file and per-class counter keys.
const (
	KeyClassCount     = "class_count"
	KeyInterfaceCount = "interface_count"
	KeyMethodCount    = "method_count"
	KeyLOC            = "loc"
	KeyTotalJavaFiles = "total_java_files"
)

// Annotation counter keys. These count stereotype annotations by suffix
// match, independent of the layer a class ends up in.
const (
	KeyController = "controller"
	KeyService    = "service"
	KeyRepository = "repository"
	KeyEntity     = "entity"
	KeyComponent  = "component"
	KeyConfig     = "config"
)

// Naming and import hint keys.
const (
	KeyFileNamedController = "file_named_controller"
	KeyFileNamedService    = "file_named_service"
	KeyFileNamedRepository = "file_named_repository"
	KeyDTOLikeNames        = "dto_like_names"
	KeySpringWeb           = "spring_web"
	KeySpringStereotype    = "spring_stereotype"
	KeySpringData          = "spring_data"
	KeyJPA                 = "jpa"
)

// Remaining scalar keys.
const (
	KeyServiceCallCount = "service_call_count"
	KeyUniqueLayersUsed = "unique_layers_used"
)

// FeatureKeys is the canonical, ordered feature schema: the single source of
// truth shared by the extractor, the vector validator and the classifier
// request payload. The edge family holds every ordered pair of distinct
// layers plus the unknown self-edge, which is where references that never
// resolve to a known class are tallied.
var FeatureKeys = buildFeatureKeys()

// featureKeySet is the membership index for FeatureKeys.
var featureKeySet = buildFeatureKeySet()

func buildFeatureKeys() []string {
	keys := []string{
		KeyClassCount,
		KeyInterfaceCount,
		KeyMethodCount,
		KeyLOC,
		KeyTotalJavaFiles,
		KeyController,
		KeyService,
		KeyRepository,
		KeyEntity,
		KeyComponent,
		KeyConfig,
	}
	for _, l := range AllLayers {
		keys = append(keys, l.Key())
	}
	for _, src := range AllLayers {
		for _, tgt := range AllLayers {
			if src == tgt && src != UnknownLayer {
				continue
			}
			keys = append(keys, EdgeKey(src, tgt))
		}
	}
	keys = append(keys,
		KeyFileNamedController,
		KeyFileNamedService,
		KeyFileNamedRepository,
		KeyDTOLikeNames,
		KeySpringWeb,
		KeySpringStereotype,
		KeySpringData,
		KeyJPA,
		KeyServiceCallCount,
		KeyUniqueLayersUsed,
	)
	return keys
}

func buildFeatureKeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(FeatureKeys))
	for _, k := range FeatureKeys {
		set[k] = struct{}{}
	}
	return set
}

// IsFeatureKey reports whether key belongs to the canonical schema.
func IsFeatureKey(key string) bool {
	_, ok := featureKeySet[key]
	return ok
}
