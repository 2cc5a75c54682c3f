package renderer

// GLSL sources for every pass. All sources are NUL-terminated for the GL
// backend.

// ── Lit geometry ──────────────────────────────────────────────────────────────

const litVertSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoords;

out vec3 FragPos;
out vec3 Normal;
out vec2 TexCoords;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    FragPos   = vec3(model * vec4(aPos, 1.0));
    Normal    = mat3(transpose(inverse(model))) * aNormal;
    TexCoords = aTexCoords;
    gl_Position = projection * view * vec4(FragPos, 1.0);
}
` + "\x00"

const litFragSrc = `
#version 410 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

#define MAX_POINT_LIGHTS 8

struct Material {
    sampler2D texture_diffuse1;
    sampler2D texture_specular1;
    float shininess;
};

struct DirLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct PointLight {
    vec3 position;
    float constant;
    float linear;
    float quadratic;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

struct SpotLight {
    vec3 position;
    vec3 direction;
    float cutOff;
    float outerCutOff;
    float constant;
    float linear;
    float quadratic;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

in vec3 FragPos;
in vec3 Normal;
in vec2 TexCoords;

uniform vec3 viewPos;
uniform DirLight dirLight;
uniform PointLight pointLights[MAX_POINT_LIGHTS];
uniform int pointLightCount;
uniform SpotLight spotLight;
uniform Material material;
uniform bool blinn;
uniform float bloomThreshold;

float specularTerm(vec3 normal, vec3 lightDir, vec3 viewDir) {
    if (blinn) {
        vec3 halfwayDir = normalize(lightDir + viewDir);
        return pow(max(dot(normal, halfwayDir), 0.0), material.shininess);
    }
    vec3 reflectDir = reflect(-lightDir, normal);
    return pow(max(dot(viewDir, reflectDir), 0.0), material.shininess);
}

vec3 calcDirLight(DirLight light, vec3 normal, vec3 viewDir, vec3 albedo, vec3 specMap) {
    vec3 lightDir = normalize(-light.direction);
    float diff = max(dot(normal, lightDir), 0.0);
    float spec = specularTerm(normal, lightDir, viewDir);
    return light.ambient * albedo + light.diffuse * diff * albedo + light.specular * spec * specMap;
}

vec3 calcPointLight(PointLight light, vec3 normal, vec3 fragPos, vec3 viewDir, vec3 albedo, vec3 specMap) {
    vec3 lightDir = normalize(light.position - fragPos);
    float diff = max(dot(normal, lightDir), 0.0);
    float spec = specularTerm(normal, lightDir, viewDir);
    float distance = length(light.position - fragPos);
    float attenuation = 1.0 / (light.constant + light.linear * distance + light.quadratic * distance * distance);
    vec3 ambient  = light.ambient * albedo;
    vec3 diffuse  = light.diffuse * diff * albedo;
    vec3 specular = light.specular * spec * specMap;
    return (ambient + diffuse + specular) * attenuation;
}

vec3 calcSpotLight(SpotLight light, vec3 normal, vec3 fragPos, vec3 viewDir, vec3 albedo, vec3 specMap) {
    vec3 lightDir = normalize(light.position - fragPos);
    float diff = max(dot(normal, lightDir), 0.0);
    float spec = specularTerm(normal, lightDir, viewDir);
    float distance = length(light.position - fragPos);
    float attenuation = 1.0 / (light.constant + light.linear * distance + light.quadratic * distance * distance);
    float theta = dot(lightDir, normalize(-light.direction));
    float epsilon = light.cutOff - light.outerCutOff;
    float intensity = clamp((theta - light.outerCutOff) / epsilon, 0.0, 1.0);
    vec3 ambient  = light.ambient * albedo;
    vec3 diffuse  = light.diffuse * diff * albedo;
    vec3 specular = light.specular * spec * specMap;
    return (ambient + diffuse + specular) * attenuation * intensity;
}

void main() {
    vec3 norm    = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);
    vec3 albedo  = texture(material.texture_diffuse1, TexCoords).rgb;
    vec3 specMap = texture(material.texture_specular1, TexCoords).rgb;

    vec3 result = calcDirLight(dirLight, norm, viewDir, albedo, specMap);
    for (int i = 0; i < pointLightCount && i < MAX_POINT_LIGHTS; i++) {
        result += calcPointLight(pointLights[i], norm, FragPos, viewDir, albedo, specMap);
    }
    result += calcSpotLight(spotLight, norm, FragPos, viewDir, albedo, specMap);

    FragColor = vec4(result, 1.0);
    float luma = dot(result, vec3(0.2126, 0.7152, 0.0722));
    BrightColor = luma > bloomThreshold ? vec4(result, 1.0) : vec4(0.0, 0.0, 0.0, 1.0);
}
` + "\x00"

// ── Alpha-tested foliage ──────────────────────────────────────────────────────

const foliageVertSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoords;

out vec2 TexCoords;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    TexCoords = aTexCoords;
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const foliageFragSrc = `
#version 410 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

in vec2 TexCoords;

uniform sampler2D texture1;
uniform float alphaCutoff;
uniform float bloomThreshold;

void main() {
    vec4 texColor = texture(texture1, TexCoords);
    if (texColor.a < alphaCutoff)
        discard;
    FragColor = texColor;
    float luma = dot(texColor.rgb, vec3(0.2126, 0.7152, 0.0722));
    BrightColor = luma > bloomThreshold ? texColor : vec4(0.0, 0.0, 0.0, 1.0);
}
` + "\x00"

// ── Skybox ────────────────────────────────────────────────────────────────────

// skyVertSrc writes z = w so the sky sits on the far plane.
const skyVertSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;

out vec3 TexCoords;

uniform mat4 projection;
uniform mat4 view;

void main() {
    TexCoords = aPos;
    vec4 pos = projection * view * vec4(aPos, 1.0);
    gl_Position = pos.xyww;
}
` + "\x00"

const skyFragSrc = `
#version 410 core
layout (location = 0) out vec4 FragColor;
layout (location = 1) out vec4 BrightColor;

in vec3 TexCoords;

uniform samplerCube skybox;
uniform float bloomThreshold;

void main() {
    vec4 color = texture(skybox, TexCoords);
    FragColor = color;
    float luma = dot(color.rgb, vec3(0.2126, 0.7152, 0.0722));
    BrightColor = luma > bloomThreshold ? color : vec4(0.0, 0.0, 0.0, 1.0);
}
` + "\x00"

// ── Fullscreen passes ─────────────────────────────────────────────────────────

// screenVertSrc is a fullscreen triangle generated from gl_VertexID.
const screenVertSrc = `
#version 410 core
out vec2 TexCoords;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    TexCoords   = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// blurFragSrc is one axis of a 9-tap separable Gaussian.
const blurFragSrc = `
#version 410 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D image;
uniform bool horizontal;

const float weight[5] = float[](0.2270270270, 0.1945945946, 0.1216216216, 0.0540540541, 0.0162162162);

void main() {
    vec2 texOffset = 1.0 / textureSize(image, 0);
    vec3 result = texture(image, TexCoords).rgb * weight[0];
    vec2 step = horizontal ? vec2(texOffset.x, 0.0) : vec2(0.0, texOffset.y);
    for (int i = 1; i < 5; ++i) {
        result += texture(image, TexCoords + step * float(i)).rgb * weight[i];
        result += texture(image, TexCoords - step * float(i)).rgb * weight[i];
    }
    FragColor = vec4(result, 1.0);
}
` + "\x00"

// compositeFragSrc adds bloom, tone maps, gamma corrects, then applies the
// selected 3x3 kernel over the mapped image.
const compositeFragSrc = `
#version 410 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D screenTexture;
uniform sampler2D bloomBlur;
uniform bool bloom;
uniform bool hdr;
uniform float exposure;
uniform float gamma;
uniform int effect;

const float offset = 1.0 / 300.0;

vec3 mapped(vec2 uv) {
    vec3 color = texture(screenTexture, uv).rgb;
    if (bloom)
        color += texture(bloomBlur, uv).rgb;
    if (hdr) {
        color = vec3(1.0) - exp(-color * exposure);
        color = pow(color, vec3(1.0 / gamma));
    }
    return color;
}

vec3 convolve(float kernel[9]) {
    vec2 offsets[9] = vec2[](
        vec2(-offset,  offset), vec2(0.0,  offset), vec2(offset,  offset),
        vec2(-offset,  0.0),    vec2(0.0,  0.0),    vec2(offset,  0.0),
        vec2(-offset, -offset), vec2(0.0, -offset), vec2(offset, -offset)
    );
    vec3 col = vec3(0.0);
    for (int i = 0; i < 9; i++)
        col += mapped(TexCoords + offsets[i]) * kernel[i];
    return col;
}

void main() {
    if (effect == 0) {
        float kernel[9] = float[](
            1.0 / 16, 2.0 / 16, 1.0 / 16,
            2.0 / 16, 4.0 / 16, 2.0 / 16,
            1.0 / 16, 2.0 / 16, 1.0 / 16
        );
        FragColor = vec4(convolve(kernel), 1.0);
    } else if (effect == 1) {
        vec3 c = mapped(TexCoords);
        float average = 0.2126 * c.r + 0.7152 * c.g + 0.0722 * c.b;
        FragColor = vec4(vec3(average), 1.0);
    } else if (effect == 2) {
        float kernel[9] = float[](
            1.0,  1.0, 1.0,
            1.0, -8.0, 1.0,
            1.0,  1.0, 1.0
        );
        FragColor = vec4(convolve(kernel), 1.0);
    } else {
        FragColor = vec4(mapped(TexCoords), 1.0);
    }
}
` + "\x00"
