package fortran

import (
	"sync"

	"github.com/leapstack-labs/stylist/pkg/tree"
)

// Kind names used by the parser. They follow the production names of the
// Fortran 2003 standard so that rules can be written against the standard.
const (
	KindComment = "Comment"
	KindName    = "Name"

	KindProgram                  = "Program"
	KindProgramUnit              = "Program_Unit"
	KindMainProgram              = "Main_Program"
	KindModule                   = "Module"
	KindExternalSubprogram       = "External_Subprogram"
	KindInternalSubprogram       = "Internal_Subprogram"
	KindModuleSubprogram         = "Module_Subprogram"
	KindFunctionSubprogram       = "Function_Subprogram"
	KindSubroutineSubprogram     = "Subroutine_Subprogram"
	KindSpecificationPart        = "Specification_Part"
	KindImplicitPart             = "Implicit_Part"
	KindExecutionPart            = "Execution_Part"
	KindInternalSubprogramPart   = "Internal_Subprogram_Part"
	KindModuleSubprogramPart     = "Module_Subprogram_Part"
	KindDerivedTypeDef           = "Derived_Type_Def"
	KindComponentPart            = "Component_Part"
	KindTypeBoundProcedurePart   = "Type_Bound_Procedure_Part"
	KindInterfaceBlock           = "Interface_Block"
	KindFunctionBody             = "Function_Body"
	KindSubroutineBody           = "Subroutine_Body"
	KindBlockLabelDoConstruct    = "Block_Label_Do_Construct"
	KindBlockNonlabelDoConstruct = "Block_Nonlabel_Do_Construct"
	KindIfConstruct              = "If_Construct"
	KindCaseConstruct            = "Case_Construct"
	KindSelectTypeConstruct      = "Select_Type_Construct"
	KindWhereConstruct           = "Where_Construct"
	KindForallConstruct          = "Forall_Construct"
	KindBlockConstruct           = "Block_Construct"
	KindAssociateConstruct       = "Associate_Construct"

	KindProgramStmt            = "Program_Stmt"
	KindEndProgramStmt         = "End_Program_Stmt"
	KindModuleStmt             = "Module_Stmt"
	KindEndModuleStmt          = "End_Module_Stmt"
	KindFunctionStmt           = "Function_Stmt"
	KindEndFunctionStmt        = "End_Function_Stmt"
	KindSubroutineStmt         = "Subroutine_Stmt"
	KindEndSubroutineStmt      = "End_Subroutine_Stmt"
	KindContainsStmt           = "Contains_Stmt"
	KindUseStmt                = "Use_Stmt"
	KindImportStmt             = "Import_Stmt"
	KindImplicitStmt           = "Implicit_Stmt"
	KindParameterStmt          = "Parameter_Stmt"
	KindFormatStmt             = "Format_Stmt"
	KindEntryStmt              = "Entry_Stmt"
	KindTypeDeclarationStmt    = "Type_Declaration_Stmt"
	KindProcedureDeclStmt      = "Procedure_Declaration_Stmt"
	KindDerivedTypeStmt        = "Derived_Type_Stmt"
	KindEndTypeStmt            = "End_Type_Stmt"
	KindDataComponentDefStmt   = "Data_Component_Def_Stmt"
	KindProcComponentDefStmt   = "Proc_Component_Def_Stmt"
	KindPrivateComponentsStmt  = "Private_Components_Stmt"
	KindSequenceStmt           = "Sequence_Stmt"
	KindBindingPrivateStmt     = "Binding_Private_Stmt"
	KindSpecificBinding        = "Specific_Binding"
	KindGenericBinding         = "Generic_Binding"
	KindFinalBinding           = "Final_Binding"
	KindInterfaceStmt          = "Interface_Stmt"
	KindEndInterfaceStmt       = "End_Interface_Stmt"
	KindProcedureStmt          = "Procedure_Stmt"
	KindAccessStmt             = "Access_Stmt"
	KindIntentStmt             = "Intent_Stmt"
	KindNonlabelDoStmt         = "Nonlabel_Do_Stmt"
	KindLabelDoStmt            = "Label_Do_Stmt"
	KindEndDoStmt              = "End_Do_Stmt"
	KindIfThenStmt             = "If_Then_Stmt"
	KindElseIfStmt             = "Else_If_Stmt"
	KindElseStmt               = "Else_Stmt"
	KindEndIfStmt              = "End_If_Stmt"
	KindIfStmt                 = "If_Stmt"
	KindSelectCaseStmt         = "Select_Case_Stmt"
	KindCaseStmt               = "Case_Stmt"
	KindEndSelectStmt          = "End_Select_Stmt"
	KindSelectTypeStmt         = "Select_Type_Stmt"
	KindTypeGuardStmt          = "Type_Guard_Stmt"
	KindEndSelectTypeStmt      = "End_Select_Type_Stmt"
	KindWhereConstructStmt     = "Where_Construct_Stmt"
	KindMaskedElsewhereStmt    = "Masked_Elsewhere_Stmt"
	KindElsewhereStmt          = "Elsewhere_Stmt"
	KindEndWhereStmt           = "End_Where_Stmt"
	KindWhereStmt              = "Where_Stmt"
	KindForallConstructStmt    = "Forall_Construct_Stmt"
	KindEndForallStmt          = "End_Forall_Stmt"
	KindForallStmt             = "Forall_Stmt"
	KindBlockStmt              = "Block_Stmt"
	KindEndBlockStmt           = "End_Block_Stmt"
	KindAssociateStmt          = "Associate_Stmt"
	KindEndAssociateStmt       = "End_Associate_Stmt"
	KindAssignmentStmt         = "Assignment_Stmt"
	KindPointerAssignmentStmt  = "Pointer_Assignment_Stmt"
	KindCallStmt               = "Call_Stmt"
	KindExitStmt               = "Exit_Stmt"
	KindCycleStmt              = "Cycle_Stmt"
	KindContinueStmt           = "Continue_Stmt"
	KindReturnStmt             = "Return_Stmt"
	KindStopStmt               = "Stop_Stmt"
	KindErrorStopStmt          = "Error_Stop_Stmt"
	KindGotoStmt               = "Goto_Stmt"
	KindAllocateStmt           = "Allocate_Stmt"
	KindDeallocateStmt         = "Deallocate_Stmt"
	KindNullifyStmt            = "Nullify_Stmt"
	KindPrintStmt              = "Print_Stmt"
	KindReadStmt               = "Read_Stmt"
	KindWriteStmt              = "Write_Stmt"
	KindOpenStmt               = "Open_Stmt"
	KindCloseStmt              = "Close_Stmt"
	KindInquireStmt            = "Inquire_Stmt"
	KindRewindStmt             = "Rewind_Stmt"
	KindBackspaceStmt          = "Backspace_Stmt"
	KindEndfileStmt            = "Endfile_Stmt"
	KindFlushStmt              = "Flush_Stmt"
	KindWaitStmt               = "Wait_Stmt"
	KindPauseStmt              = "Pause_Stmt"
	KindDeclarationConstruct   = "Declaration_Construct"
	KindSpecificationStmt      = "Specification_Stmt"
	KindImplicitPartStmt       = "Implicit_Part_Stmt"
	KindExecutionPartConstruct = "Execution_Part_Construct"
	KindExecutableConstruct    = "Executable_Construct"
	KindActionStmt             = "Action_Stmt"
	KindDoConstruct            = "Do_Construct"
	KindBlockDoConstruct       = "Block_Do_Construct"
	KindComponentDefStmt       = "Component_Def_Stmt"
	KindPrivateOrSequence      = "Private_Or_Sequence"
	KindProcBindingStmt        = "Proc_Binding_Stmt"
	KindInterfaceSpecification = "Interface_Specification"
	KindInterfaceBody          = "Interface_Body"
	KindDoStmt                 = "Do_Stmt"

	KindEntityDecl             = "Entity_Decl"
	KindEntityDeclList         = "Entity_Decl_List"
	KindComponentDecl          = "Component_Decl"
	KindComponentDeclList      = "Component_Decl_List"
	KindProcDecl               = "Proc_Decl"
	KindProcDeclList           = "Proc_Decl_List"
	KindAttrSpec               = "Attr_Spec"
	KindAttrSpecList           = "Attr_Spec_List"
	KindComponentAttrSpecList  = "Component_Attr_Spec_List"
	KindProcAttrSpecList       = "Proc_Attr_Spec_List"
	KindProcComponentAttrList  = "Proc_Component_Attr_Spec_List"
	KindArraySpec              = "Array_Spec"
	KindCharLength             = "Char_Length"
	KindInitialization         = "Initialization"
	KindOnlyList               = "Only_List"
	KindRename                 = "Rename"
	KindDummyArgList           = "Dummy_Arg_List"
)

// specificationStmts are the statements valid anywhere in a specification part
// which carry only attributes for names declared elsewhere.
var specificationStmts = []string{
	KindAccessStmt, "Allocatable_Stmt", "Asynchronous_Stmt", "Bind_Stmt",
	"Common_Stmt", "Data_Stmt", "Dimension_Stmt", "Equivalence_Stmt",
	"External_Stmt", KindIntentStmt, "Intrinsic_Stmt", "Namelist_Stmt",
	"Optional_Stmt", "Pointer_Stmt", "Protected_Stmt", "Save_Stmt",
	"Target_Stmt", "Value_Stmt", "Volatile_Stmt",
}

var actionStmts = []string{
	KindAllocateStmt, KindAssignmentStmt, KindBackspaceStmt, KindCallStmt,
	KindCloseStmt, KindContinueStmt, KindCycleStmt, KindDeallocateStmt,
	KindEndfileStmt, KindErrorStopStmt, KindExitStmt, KindFlushStmt,
	KindForallStmt, KindGotoStmt, KindIfStmt, KindInquireStmt,
	KindNullifyStmt, KindOpenStmt, KindPauseStmt, KindPointerAssignmentStmt,
	KindPrintStmt, KindReadStmt, KindReturnStmt, KindRewindStmt,
	KindStopStmt, KindWaitStmt, KindWhereStmt, KindWriteStmt,
}

var abstractKinds = []tree.Kind{
	{Name: KindProgramUnit, Subtypes: []string{KindComment, KindMainProgram, KindExternalSubprogram, KindModule}},
	{Name: KindExternalSubprogram, Subtypes: []string{KindFunctionSubprogram, KindSubroutineSubprogram}},
	{Name: KindInternalSubprogram, Subtypes: []string{KindFunctionSubprogram, KindSubroutineSubprogram}},
	{Name: KindModuleSubprogram, Subtypes: []string{KindFunctionSubprogram, KindSubroutineSubprogram}},
	{Name: KindImplicitPartStmt, Subtypes: []string{KindComment, KindImplicitStmt, KindParameterStmt, KindFormatStmt, KindEntryStmt}},
	{Name: KindDeclarationConstruct, Subtypes: []string{
		KindDerivedTypeDef, KindEntryStmt, KindFormatStmt, KindInterfaceBlock,
		KindParameterStmt, KindProcedureDeclStmt, KindSpecificationStmt,
		KindTypeDeclarationStmt, KindImplicitStmt,
	}},
	{Name: KindSpecificationStmt, Subtypes: specificationStmts},
	{Name: KindExecutionPartConstruct, Subtypes: []string{KindExecutableConstruct, KindFormatStmt, KindEntryStmt, "Data_Stmt"}},
	{Name: KindExecutableConstruct, Subtypes: []string{
		KindActionStmt, KindAssociateConstruct, KindBlockConstruct, KindCaseConstruct,
		KindDoConstruct, KindForallConstruct, KindIfConstruct, KindSelectTypeConstruct,
		KindWhereConstruct,
	}},
	{Name: KindActionStmt, Subtypes: actionStmts},
	{Name: KindDoConstruct, Subtypes: []string{KindBlockDoConstruct}},
	{Name: KindBlockDoConstruct, Subtypes: []string{KindBlockLabelDoConstruct, KindBlockNonlabelDoConstruct}},
	{Name: KindDoStmt, Subtypes: []string{KindLabelDoStmt, KindNonlabelDoStmt}},
	{Name: KindComponentDefStmt, Subtypes: []string{KindDataComponentDefStmt, KindProcComponentDefStmt}},
	{Name: KindPrivateOrSequence, Subtypes: []string{KindPrivateComponentsStmt, KindSequenceStmt}},
	{Name: KindProcBindingStmt, Subtypes: []string{KindSpecificBinding, KindGenericBinding, KindFinalBinding}},
	{Name: KindInterfaceSpecification, Subtypes: []string{KindInterfaceBody, KindProcedureStmt}},
	{Name: KindInterfaceBody, Subtypes: []string{KindFunctionBody, KindSubroutineBody}},
}

var concreteKinds = []string{
	KindComment, KindName,
	KindProgram, KindMainProgram, KindModule, KindFunctionSubprogram, KindSubroutineSubprogram,
	KindSpecificationPart, KindImplicitPart, KindExecutionPart,
	KindInternalSubprogramPart, KindModuleSubprogramPart,
	KindDerivedTypeDef, KindComponentPart, KindTypeBoundProcedurePart,
	KindInterfaceBlock, KindFunctionBody, KindSubroutineBody,
	KindBlockLabelDoConstruct, KindBlockNonlabelDoConstruct, KindIfConstruct,
	KindCaseConstruct, KindSelectTypeConstruct, KindWhereConstruct,
	KindForallConstruct, KindBlockConstruct, KindAssociateConstruct,

	KindProgramStmt, KindEndProgramStmt, KindModuleStmt, KindEndModuleStmt,
	KindFunctionStmt, KindEndFunctionStmt, KindSubroutineStmt, KindEndSubroutineStmt,
	KindContainsStmt, KindUseStmt, KindImportStmt, KindImplicitStmt,
	KindParameterStmt, KindFormatStmt, KindEntryStmt,
	KindTypeDeclarationStmt, KindProcedureDeclStmt,
	KindDerivedTypeStmt, KindEndTypeStmt, KindDataComponentDefStmt, KindProcComponentDefStmt,
	KindPrivateComponentsStmt, KindSequenceStmt, KindBindingPrivateStmt,
	KindSpecificBinding, KindGenericBinding, KindFinalBinding,
	KindInterfaceStmt, KindEndInterfaceStmt, KindProcedureStmt,
	KindNonlabelDoStmt, KindLabelDoStmt, KindEndDoStmt,
	KindIfThenStmt, KindElseIfStmt, KindElseStmt, KindEndIfStmt,
	KindSelectCaseStmt, KindCaseStmt, KindEndSelectStmt,
	KindSelectTypeStmt, KindTypeGuardStmt, KindEndSelectTypeStmt,
	KindWhereConstructStmt, KindMaskedElsewhereStmt, KindElsewhereStmt, KindEndWhereStmt,
	KindForallConstructStmt, KindEndForallStmt,
	KindBlockStmt, KindEndBlockStmt, KindAssociateStmt, KindEndAssociateStmt,

	KindEntityDecl, KindEntityDeclList, KindComponentDecl, KindComponentDeclList,
	KindProcDecl, KindProcDeclList, KindAttrSpec, KindAttrSpecList,
	KindComponentAttrSpecList, KindProcAttrSpecList, KindProcComponentAttrList,
	KindArraySpec, KindCharLength, KindInitialization,
	KindOnlyList, KindRename, KindDummyArgList,
}

var grammar = sync.OnceValue(func() *tree.Registry {
	kinds := make([]tree.Kind, 0, len(concreteKinds)+len(specificationStmts)+len(actionStmts)+len(abstractKinds))
	for _, name := range concreteKinds {
		kinds = append(kinds, tree.Kind{Name: name})
	}
	for _, name := range specificationStmts {
		kinds = append(kinds, tree.Kind{Name: name})
	}
	for _, name := range actionStmts {
		kinds = append(kinds, tree.Kind{Name: name})
	}
	kinds = append(kinds, abstractKinds...)
	return tree.NewRegistry(KindComment, kinds...)
})

// Grammar returns the registry of every kind the parser produces together
// with the abstract productions that group them.
func Grammar() *tree.Registry {
	return grammar()
}
