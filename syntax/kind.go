package syntax

// Kind is a closed classification of tree nodes that codemods switch over.
type Kind int

const (
	Unknown Kind = iota
	Program
	Error
	Comment

	Identifier
	PropertyName
	TypeIdentifier

	StringLiteral
	TemplateLiteral
	NumericLiteral
	TrueLiteral
	FalseLiteral
	NullLiteral
	UndefinedLiteral

	ObjectLiteral
	ArrayLiteral
	PropertyAssignment
	ShorthandProperty
	SpreadElement
	MethodDefinition

	CallExpression
	NewExpression
	AwaitExpression
	AsExpression
	NonNullExpression
	MemberExpression
	ParenthesizedExpression
	Arguments

	FunctionDeclaration
	FunctionExpression
	ArrowFunction
	ClassDeclaration
	ClassExpression
	ParameterList
	Parameter
	ObjectBindingPattern
	ArrayBindingPattern
	BindingElement

	VariableStatement
	VariableDeclaration
	ExportAssignment
	ExportDeclaration
	ExportClause
	ExportSpecifier
	ImportDeclaration
	ImportClause
	NamedImports
	NamespaceImport
	ImportSpecifier

	Block
	ExpressionStatement
	ReturnStatement
	ThrowStatement
	IfStatement

	TypeAnnotation
	GenericType
)

var kindNames = [...]string{
	Unknown:                 "Unknown",
	Program:                 "Program",
	Error:                   "Error",
	Comment:                 "Comment",
	Identifier:              "Identifier",
	PropertyName:            "PropertyName",
	TypeIdentifier:          "TypeIdentifier",
	StringLiteral:           "StringLiteral",
	TemplateLiteral:         "TemplateLiteral",
	NumericLiteral:          "NumericLiteral",
	TrueLiteral:             "TrueLiteral",
	FalseLiteral:            "FalseLiteral",
	NullLiteral:             "NullLiteral",
	UndefinedLiteral:        "UndefinedLiteral",
	ObjectLiteral:           "ObjectLiteral",
	ArrayLiteral:            "ArrayLiteral",
	PropertyAssignment:      "PropertyAssignment",
	ShorthandProperty:       "ShorthandProperty",
	SpreadElement:           "SpreadElement",
	MethodDefinition:        "MethodDefinition",
	CallExpression:          "CallExpression",
	NewExpression:           "NewExpression",
	AwaitExpression:         "AwaitExpression",
	AsExpression:            "AsExpression",
	NonNullExpression:       "NonNullExpression",
	MemberExpression:        "MemberExpression",
	ParenthesizedExpression: "ParenthesizedExpression",
	Arguments:               "Arguments",
	FunctionDeclaration:     "FunctionDeclaration",
	FunctionExpression:      "FunctionExpression",
	ArrowFunction:           "ArrowFunction",
	ClassDeclaration:        "ClassDeclaration",
	ClassExpression:         "ClassExpression",
	ParameterList:           "ParameterList",
	Parameter:               "Parameter",
	ObjectBindingPattern:    "ObjectBindingPattern",
	ArrayBindingPattern:     "ArrayBindingPattern",
	BindingElement:          "BindingElement",
	VariableStatement:       "VariableStatement",
	VariableDeclaration:     "VariableDeclaration",
	ExportAssignment:        "ExportAssignment",
	ExportDeclaration:       "ExportDeclaration",
	ExportClause:            "ExportClause",
	ExportSpecifier:         "ExportSpecifier",
	ImportDeclaration:       "ImportDeclaration",
	ImportClause:            "ImportClause",
	NamedImports:            "NamedImports",
	NamespaceImport:         "NamespaceImport",
	ImportSpecifier:         "ImportSpecifier",
	Block:                   "Block",
	ExpressionStatement:     "ExpressionStatement",
	ReturnStatement:         "ReturnStatement",
	ThrowStatement:          "ThrowStatement",
	IfStatement:             "IfStatement",
	TypeAnnotation:          "TypeAnnotation",
	GenericType:             "GenericType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsFunctionLike reports whether the kind introduces a function body.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case FunctionDeclaration, FunctionExpression, ArrowFunction, MethodDefinition:
		return true
	}
	return false
}

var kindByType = map[string]Kind{
	"program":                              Program,
	"ERROR":                                Error,
	"comment":                              Comment,
	"identifier":                           Identifier,
	"property_identifier":                  PropertyName,
	"type_identifier":                      TypeIdentifier,
	"string":                               StringLiteral,
	"template_string":                      TemplateLiteral,
	"number":                               NumericLiteral,
	"true":                                 TrueLiteral,
	"false":                                FalseLiteral,
	"null":                                 NullLiteral,
	"undefined":                            UndefinedLiteral,
	"object":                               ObjectLiteral,
	"array":                                ArrayLiteral,
	"pair":                                 PropertyAssignment,
	"shorthand_property_identifier":        ShorthandProperty,
	"spread_element":                       SpreadElement,
	"method_definition":                    MethodDefinition,
	"call_expression":                      CallExpression,
	"new_expression":                       NewExpression,
	"await_expression":                     AwaitExpression,
	"as_expression":                        AsExpression,
	"satisfies_expression":                 AsExpression,
	"non_null_expression":                  NonNullExpression,
	"member_expression":                    MemberExpression,
	"parenthesized_expression":             ParenthesizedExpression,
	"arguments":                            Arguments,
	"function_declaration":                 FunctionDeclaration,
	"generator_function_declaration":       FunctionDeclaration,
	"function_expression":                  FunctionExpression,
	"function":                             FunctionExpression,
	"generator_function":                   FunctionExpression,
	"arrow_function":                       ArrowFunction,
	"class_declaration":                    ClassDeclaration,
	"abstract_class_declaration":           ClassDeclaration,
	"class":                                ClassExpression,
	"formal_parameters":                    ParameterList,
	"required_parameter":                   Parameter,
	"optional_parameter":                   Parameter,
	"object_pattern":                       ObjectBindingPattern,
	"array_pattern":                        ArrayBindingPattern,
	"shorthand_property_identifier_pattern": BindingElement,
	"pair_pattern":                         BindingElement,
	"object_assignment_pattern":            BindingElement,
	"assignment_pattern":                   BindingElement,
	"rest_pattern":                         BindingElement,
	"lexical_declaration":                  VariableStatement,
	"variable_declaration":                 VariableStatement,
	"variable_declarator":                  VariableDeclaration,
	"export_clause":                        ExportClause,
	"export_specifier":                     ExportSpecifier,
	"import_statement":                     ImportDeclaration,
	"import_clause":                        ImportClause,
	"named_imports":                        NamedImports,
	"namespace_import":                     NamespaceImport,
	"import_specifier":                     ImportSpecifier,
	"statement_block":                      Block,
	"expression_statement":                 ExpressionStatement,
	"return_statement":                     ReturnStatement,
	"throw_statement":                      ThrowStatement,
	"if_statement":                         IfStatement,
	"type_annotation":                      TypeAnnotation,
	"generic_type":                         GenericType,
}
