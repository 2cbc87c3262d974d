package gfx

// Default shader sources. The model and skybox programs both declare the
// Matrices uniform block, so projection and view are written once per frame
// and shared.
const (
	MeshVertex = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoords;

layout (std140) uniform Matrices {
	mat4 projection;
	mat4 view;
};
uniform mat4 model;

out vec3 FragPos;
out vec3 Normal;
out vec2 TexCoords;

void main() {
	FragPos = vec3(model * vec4(aPos, 1.0));
	Normal = mat3(transpose(inverse(model))) * aNormal;
	TexCoords = aTexCoords;
	gl_Position = projection * view * vec4(FragPos, 1.0);
}
`

	MeshFragment = `#version 410 core
in vec3 FragPos;
in vec3 Normal;
in vec2 TexCoords;
out vec4 FragColor;

uniform sampler2D texture_diffuse1;
uniform sampler2D texture_specular1;
uniform vec3 viewPos;

void main() {
	vec3 lightDir = normalize(vec3(0.3, 1.0, 0.5));
	vec3 norm = normalize(Normal);
	vec3 albedo = texture(texture_diffuse1, TexCoords).rgb;
	float diff = max(dot(norm, lightDir), 0.0);
	vec3 viewDir = normalize(viewPos - FragPos);
	vec3 halfway = normalize(lightDir + viewDir);
	float spec = pow(max(dot(norm, halfway), 0.0), 32.0);
	vec3 specular = spec * texture(texture_specular1, TexCoords).rgb;
	FragColor = vec4(albedo * (0.15 + diff) + specular, 1.0);
}
`

	SkyboxVertex = `#version 410 core
layout (location = 0) in vec3 aPos;

layout (std140) uniform Matrices {
	mat4 projection;
	mat4 view;
};

out vec3 TexCoords;

void main() {
	TexCoords = aPos;
	vec4 pos = projection * mat4(mat3(view)) * vec4(aPos, 1.0);
	gl_Position = pos.xyww;
}
`

	SkyboxFragment = `#version 410 core
in vec3 TexCoords;
out vec4 FragColor;

uniform samplerCube skybox;

void main() {
	FragColor = texture(skybox, TexCoords);
}
`

	ScreenVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoords;

out vec2 TexCoords;

void main() {
	TexCoords = aTexCoords;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

	ScreenFragment = `#version 410 core
in vec2 TexCoords;
out vec4 FragColor;

uniform sampler2D screenTexture;

void main() {
	FragColor = vec4(texture(screenTexture, TexCoords).rgb, 1.0);
}
`
)
